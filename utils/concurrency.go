package utils

import (
	"sync"
	"time"
)

// WorkerPool bounds the number of concurrently running jobs and paces
// requests by holding each slot for a fixed delay after its job
// finishes. With C workers and delay D the sustained rate is roughly
// C jobs per D.
type WorkerPool struct {
	maxWorkers int
	taskDelay  time.Duration
	semaphore  chan struct{}
	wg         sync.WaitGroup
}

// NewWorkerPool creates a WorkerPool with the given concurrency and
// per-task delay in milliseconds.
func NewWorkerPool(maxWorkers, taskDelayMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		maxWorkers: maxWorkers,
		taskDelay:  time.Duration(taskDelayMs) * time.Millisecond,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Submit enqueues a job for execution in the pool. It blocks while all
// slots are occupied, so callers submit the whole worklist in a simple
// loop without flooding the target.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()

		job()

		// The slot stays occupied for the pacing delay whether the
		// job succeeded or failed.
		if wp.taskDelay > 0 {
			time.Sleep(wp.taskDelay)
		}
		<-wp.semaphore
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// IDSet is a thread-safe set for tracking pharmacy identifiers.
type IDSet struct {
	mu   sync.RWMutex
	seen map[int]struct{}
}

// NewIDSet creates an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[int]struct{})}
}

// Add returns true if the identifier was newly added, false if already present.
func (s *IDSet) Add(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Contains returns true if the identifier has already been seen.
func (s *IDSet) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[id]
	return exists
}

// Size returns the number of unique identifiers tracked.
func (s *IDSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
