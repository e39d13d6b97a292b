package models

import (
	"encoding/json"
	"testing"
)

func TestFlagUnmarshalTolerant(t *testing.T) {
	tests := []struct {
		raw  string
		want Flag
	}{
		{`1`, "1"},
		{`0`, "0"},
		{`"1"`, "1"},
		{`" 1 "`, "1"},
		{`true`, "1"},
		{`false`, "0"},
		{`null`, ""},
		{`""`, ""},
	}

	for _, tt := range tests {
		var f Flag
		if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
			t.Errorf("Unmarshal(%s) error: %v", tt.raw, err)
			continue
		}
		if f != tt.want {
			t.Errorf("Unmarshal(%s) = %q; want %q", tt.raw, f, tt.want)
		}
	}
}

func TestFlagSet(t *testing.T) {
	if !Flag("1").Set() {
		t.Error(`Flag("1").Set() = false; want true`)
	}
	if Flag("0").Set() || Flag("").Set() {
		t.Error("zero-valued flags report Set() = true")
	}
}

func TestListingEntryDecode(t *testing.T) {
	raw := `{"id":7,"thumbImg":"/t.jpg","pharmacyName":"Aptek","pharmacyTel":"012","pharmacyMob":"050","isduty":1,"optika":"0"}`

	var e ListingEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.ID != 7 || e.IsDuty != "1" || e.Optika != "0" {
		t.Errorf("entry = %+v; want id 7, isduty 1, optika 0", e)
	}
}
