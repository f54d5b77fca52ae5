package mirror

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ReporterOptions configures the run reporter.
type ReporterOptions struct {
	// Total is the number of matrices in the run.
	Total int

	// Jobs is the number of parallel workers, for display.
	Jobs int

	// Output is where to write progress lines. Default: os.Stderr.
	Output io.Writer

	// UpdateInterval is how often to refresh the display. Default: 1s.
	UpdateInterval time.Duration
}

// Reporter prints periodic progress for a mirror run. Record may be called
// from the run's collector goroutine while the update loop prints.
type Reporter struct {
	opts ReporterOptions

	fetched atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64

	startTime time.Time
	stopCh    chan struct{}

	mu      sync.Mutex
	stopped bool
}

// NewReporter creates a run reporter.
func NewReporter(opts ReporterOptions) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = time.Second
	}
	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Start begins printing progress lines.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	fmt.Fprintf(r.opts.Output, "[ssmirror] Mirroring %d matrices with %d workers\n",
		r.opts.Total, r.opts.Jobs)
	go r.updateLoop()
}

// Stop halts the reporter after printing a final status line.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

// Record accounts one finished job.
func (r *Reporter) Record(s Status) {
	switch s {
	case StatusFetched:
		r.fetched.Add(1)
	case StatusSkipped:
		r.skipped.Add(1)
	case StatusFailed:
		r.failed.Add(1)
	}
}

func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printStatus("\n")
			return
		case <-ticker.C:
			r.printStatus("")
		}
	}
}

func (r *Reporter) printStatus(tail string) {
	fetched := r.fetched.Load()
	skipped := r.skipped.Load()
	failed := r.failed.Load()
	done := fetched + skipped + failed
	pending := int64(r.opts.Total) - done
	if pending < 0 {
		pending = 0
	}

	fmt.Fprintf(r.opts.Output,
		"\r[ssmirror] %d/%d | fetched %d | skipped %d | failed %d | pending %d | elapsed %s    %s",
		done, r.opts.Total, fetched, skipped, failed, pending,
		formatDuration(time.Since(r.startTime)), tail)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
