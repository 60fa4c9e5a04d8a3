package annotate

import (
	"fmt"
	"sync"
	"time"

	"flowercoco/logging"
)

// ProgressTracker tracks progress of an annotation run
type ProgressTracker struct {
	processed  int
	degraded   int
	errors     int
	ticker     *time.Ticker
	done       chan bool
	drained    chan struct{}
	mu         sync.Mutex
	totalFiles int
}

// NewProgressTracker initializes the progress tracker
func NewProgressTracker(totalFiles int, resultsChan chan Result) *ProgressTracker {
	tracker := &ProgressTracker{
		ticker:     time.NewTicker(500 * time.Millisecond),
		done:       make(chan bool),
		drained:    make(chan struct{}),
		totalFiles: totalFiles,
	}

	// Start progress display goroutine
	go tracker.displayProgress()

	// Start result processor goroutine
	go tracker.processResults(resultsChan)

	return tracker
}

// displayProgress shows the progress periodically
func (p *ProgressTracker) displayProgress() {
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			p.mu.Lock()
			if p.errors > 0 {
				fmt.Printf("\rProgress: %d/%d (Degraded: %d, Errors: %d)",
					p.processed, p.totalFiles, p.degraded, p.errors)
			} else {
				fmt.Printf("\rProgress: %d/%d (Degraded: %d)",
					p.processed, p.totalFiles, p.degraded)
			}
			p.mu.Unlock()
		}
	}
}

// processResults updates the tracker state based on processing results
func (p *ProgressTracker) processResults(resultsChan chan Result) {
	for result := range resultsChan {
		p.mu.Lock()
		p.processed++

		if result.Degraded {
			p.degraded++
		}

		if !result.Success {
			p.errors++
			if result.Error != nil {
				logging.LogImageProcessed(result.Path, false, result.Error.Error())
			}
		} else {
			logging.LogImageProcessed(result.Path, true, "")
		}

		p.mu.Unlock()
	}
	close(p.drained)
}

// Stop ends the progress tracking once every result has been counted.
// The results channel must be closed before calling Stop.
func (p *ProgressTracker) Stop() {
	<-p.drained
	p.ticker.Stop()
	p.done <- true
}

// Processed returns how many images were handled
func (p *ProgressTracker) Processed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

// Degraded returns how many images fell back to a full-frame box
func (p *ProgressTracker) Degraded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

// Errors returns how many images failed outright
func (p *ProgressTracker) Errors() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors
}
