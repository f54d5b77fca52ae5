package mirror

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jamtrott/suitesparse-tools/internal/catalog"
	"github.com/jamtrott/suitesparse-tools/internal/fetch"
)

// IndexName is the well-known name of the collection index snapshot. The
// index is served at files/ssstats.csv under the base URL and stored
// directly under the output root.
const IndexName = "ssstats.csv"

// Status classifies the outcome of one job.
type Status int

const (
	StatusFetched Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFetched:
		return "fetched"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result records the outcome of one job. Err is set only for StatusFailed.
type Result struct {
	Matrix *catalog.Matrix
	Status Status
	Err    error
}

// Summary aggregates all job results of a run.
type Summary struct {
	// DeclaredCount is the matrix count stated by the index header.
	DeclaredCount int

	Fetched int
	Skipped int
	Failed  int

	// Failures lists every failed job, in completion order.
	Failures []Result
}

// Ok reports whether every job either fetched or skipped.
func (s *Summary) Ok() bool { return s.Failed == 0 }

// Fetcher retrieves one URL into a directory. *fetch.Client satisfies it;
// tests substitute instrumented stubs.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (*fetch.Outcome, error)
}

// Uploader replicates a fetched tarball into remote storage. *sink.Sink
// satisfies it.
type Uploader interface {
	Store(ctx context.Context, localPath, key string) error
}

// Options configures a mirror run.
type Options struct {
	// BaseURL of the collection, e.g. https://sparse.tamu.edu/.
	BaseURL string

	// Root is the local directory receiving the mirror. Created if absent.
	Root string

	// Jobs is the number of parallel workers. Values below 1 mean 1; a
	// single worker processes matrices strictly in catalog order.
	Jobs int

	// Fetcher performs the transfers. Default: a zero fetch.Client.
	Fetcher Fetcher

	// Sink, when non-nil, receives every freshly fetched tarball.
	Sink Uploader

	// Progress enables the periodic run reporter on ProgressOutput.
	Progress       bool
	ProgressOutput io.Writer

	Logger zerolog.Logger
}

// Run mirrors the whole collection under opts.Root. It returns an error
// only for run-fatal conditions: the output root cannot be created, or the
// index cannot be fetched or parsed. Per-matrix failures never abort
// sibling jobs; they are reported through the Summary.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.Fetcher == nil {
		opts.Fetcher = &fetch.Client{}
	}

	if err := os.MkdirAll(opts.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	col, err := fetchIndex(ctx, opts)
	if err != nil {
		return nil, err
	}

	if col.DeclaredCount != len(col.Matrices) {
		opts.Logger.Warn().
			Int("declared", col.DeclaredCount).
			Int("parsed", len(col.Matrices)).
			Msg("index header count does not match parsed records")
	}
	opts.Logger.Info().
		Int("matrices", len(col.Matrices)).
		Str("date", col.Date).
		Int("jobs", opts.Jobs).
		Msg("mirroring collection")

	var reporter *Reporter
	if opts.Progress {
		reporter = NewReporter(ReporterOptions{
			Total:  len(col.Matrices),
			Jobs:   opts.Jobs,
			Output: opts.ProgressOutput,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	jobCh := make(chan Job)
	resCh := make(chan Result)

	var wg sync.WaitGroup
	for w := 0; w < opts.Jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resCh <- runJob(ctx, opts, job)
			}
		}()
	}

	// Dispatch in catalog order. On cancellation the feeder stops early;
	// the channel still closes so workers drain and exit.
	go func() {
		defer close(jobCh)
		for i := range col.Matrices {
			job := PlanJob(&col.Matrices[i], opts.BaseURL, opts.Root)
			select {
			case jobCh <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resCh)
	}()

	summary := &Summary{DeclaredCount: col.DeclaredCount}
	for res := range resCh {
		switch res.Status {
		case StatusFetched:
			summary.Fetched++
			opts.Logger.Debug().
				Str("group", res.Matrix.Group).
				Str("name", res.Matrix.Name).
				Msg("fetched")
		case StatusSkipped:
			summary.Skipped++
			opts.Logger.Debug().
				Str("group", res.Matrix.Group).
				Str("name", res.Matrix.Name).
				Msg("already present, skipping")
		case StatusFailed:
			summary.Failed++
			summary.Failures = append(summary.Failures, res)
			opts.Logger.Error().
				Str("group", res.Matrix.Group).
				Str("name", res.Matrix.Name).
				Err(res.Err).
				Msg("fetch failed")
		}
		if reporter != nil {
			reporter.Record(res.Status)
		}
	}

	return summary, nil
}

// runJob executes one job: skip, or create the group directory and fetch.
// Every error is confined to this job's Result.
func runJob(ctx context.Context, opts Options, job Job) Result {
	res := Result{Matrix: job.Matrix}

	if job.Satisfied() {
		res.Status = StatusSkipped
		return res
	}

	groupDir := filepath.Dir(job.Dest)
	// MkdirAll tolerates concurrent creation of the same group directory.
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("create group directory: %w", err)
		return res
	}

	if _, err := opts.Fetcher.Fetch(ctx, job.URL, groupDir); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if opts.Sink != nil {
		key := path.Join(job.Matrix.Group, job.Matrix.Name+".tar.gz")
		if err := opts.Sink.Store(ctx, job.Dest, key); err != nil {
			res.Status = StatusFailed
			res.Err = fmt.Errorf("replicate %s: %w", key, err)
			return res
		}
	}

	res.Status = StatusFetched
	return res
}

// fetchIndex refreshes and parses the index snapshot under the output root.
func fetchIndex(ctx context.Context, opts Options) (*catalog.Collection, error) {
	indexURL, err := resolveIndexURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := opts.Fetcher.Fetch(ctx, indexURL, opts.Root); err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	f, err := os.Open(filepath.Join(opts.Root, IndexName))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	col, err := catalog.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return col, nil
}

func resolveIndexURL(baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return base.ResolveReference(&url.URL{Path: "files/" + IndexName}).String(), nil
}
