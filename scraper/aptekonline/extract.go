package aptekonline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aptekonline-scraper/models"
)

const multiValueSep = "; "

var (
	// titleNamePattern strips the site brand suffix from the page title.
	titleNamePattern = regexp.MustCompile(`^(.+?)\s*Aptekonline`)

	// coordsPattern matches the lat/lng numeric literals inside the
	// inline initMapPharmacies script call. The coordinates live in a
	// script body, not in page attributes, so a loose non-structural
	// match is the only stable option. [^}]*? bounds the scan to the
	// argument object.
	coordsPattern = regexp.MustCompile(
		`(?s)initMapPharmacies[^{]+\{[^}]*?lat:\s*\(?([0-9.]+)\)?[^}]*?lng:\s*\(?([0-9.]+)\)?`)
)

// extractDetail parses one pharmacy page into a DetailRecord. Each
// field is resolved independently and falls back to an empty value
// when its markup is absent; only a page-level parse failure (or an
// unexpected panic) fails the whole record.
func extractDetail(id int, pageURL string, body []byte) (rec *models.DetailRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("extract: %v", r)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract: parse page: %w", err)
	}

	rec = &models.DetailRecord{ID: id, PageURL: pageURL}

	rec.Name = extractName(doc)
	rec.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	rec.Region = cleanText(doc.Find("div.card-header").First().Text())

	extractContactBlock(doc, rec)

	if m := coordsPattern.FindSubmatch(body); m != nil {
		rec.Latitude = string(m[1])
		rec.Longitude = string(m[2])
	}

	rec.ImageURL = doc.Find("div.aptek-pinto img.img-fluid").First().AttrOr("src", "")
	rec.AllPhones = extractPhones(doc)
	rec.InsurancePartners = extractInsurancePartners(doc)
	rec.GalleryImages, rec.GalleryCount = extractGallery(doc)

	if rec.Latitude != "" && rec.Longitude != "" {
		rec.GoogleMapsURL = fmt.Sprintf("https://www.google.com/maps?q=%s,%s", rec.Latitude, rec.Longitude)
	}

	return rec, nil
}

// extractName takes the page title and strips the trailing brand suffix.
func extractName(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	if m := titleNamePattern.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(strings.Split(title, "Aptekonline")[0])
}

// extractContactBlock pulls address, contact phone and the optika
// marker out of the contact section. The address and phone are located
// via their marker icons; a missing marker falls back to the first
// paragraph.
func extractContactBlock(doc *goquery.Document, rec *models.DetailRecord) {
	contact := doc.Find("div.contact-aptek").First()
	if contact.Length() == 0 {
		return
	}

	if marker := contact.Find("i.fa-map-marker").First(); marker.Length() > 0 {
		rec.Address = cleanText(marker.Parent().Text())
	} else {
		rec.Address = cleanText(contact.Find("p").First().Text())
	}

	if phone := contact.Find("i.fa-phone").First(); phone.Length() > 0 {
		rec.ContactPhone = cleanText(phone.Parent().Text())
	}

	rec.HasOptikaService = contact.Find("i.fa-eye").Length() > 0
}

// extractPhones collects every tel: anchor target, deduplicated in
// first-seen order.
func extractPhones(doc *goquery.Document) string {
	seen := make(map[string]struct{})
	var phones []string

	doc.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		phone := strings.TrimPrefix(a.AttrOr("href", ""), "tel:")
		if phone == "" {
			return
		}
		if _, dup := seen[phone]; dup {
			return
		}
		seen[phone] = struct{}{}
		phones = append(phones, phone)
	})

	return strings.Join(phones, multiValueSep)
}

// extractInsurancePartners collects image titles from the partner
// section, preserving duplicates and document order.
func extractInsurancePartners(doc *goquery.Document) string {
	var titles []string
	doc.Find("section.partniyor img[title]").Each(func(_ int, img *goquery.Selection) {
		if title := img.AttrOr("title", ""); title != "" {
			titles = append(titles, title)
		}
	})
	return strings.Join(titles, multiValueSep)
}

// extractGallery collects gallery image sources and their count.
func extractGallery(doc *goquery.Document) (string, int) {
	var urls []string
	doc.Find("div.tab-gallery img[src]").Each(func(_ int, img *goquery.Selection) {
		if src := img.AttrOr("src", ""); src != "" {
			urls = append(urls, src)
		}
	})
	return strings.Join(urls, multiValueSep), len(urls)
}

// cleanText trims and collapses all internal whitespace runs to single
// spaces, normalising the ragged text nodes the site emits.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
