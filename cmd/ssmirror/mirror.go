package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/jamtrott/suitesparse-tools/internal/catalog"
	"github.com/jamtrott/suitesparse-tools/internal/config"
	"github.com/jamtrott/suitesparse-tools/internal/fetch"
	"github.com/jamtrott/suitesparse-tools/internal/logging"
	"github.com/jamtrott/suitesparse-tools/internal/mirror"
	"github.com/jamtrott/suitesparse-tools/internal/sink"
)

// runMirror downloads every matrix in the collection to local storage,
// skipping tarballs that are already present.
func runMirror(args []string) int {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)

	out := fs.String("out", "", "Output directory (default: suitesparse)")
	baseURL := fs.String("url", "", "Base URL of the collection (default: https://sparse.tamu.edu/)")
	jobs := fs.Int("j", 0, "Number of parallel download jobs")
	verbose := fs.Bool("v", false, "Pass the retrieval tool's output through")
	progress := fs.Bool("progress", false, "Show a periodic run status line")
	bucket := fs.String("bucket", "", "Replicate fetched tarballs to this bucket URL (s3://, gs://)")
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: ssmirror mirror [options] [-- wget args...]

Download the SuiteSparse Matrix Collection. Matrices whose tarball already
exists under the output directory are skipped, so an interrupted run can be
resumed by running the same command again. Arguments after -- are passed
through to wget.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	cfg = cfg.Merge(config.Config{
		Root:     *out,
		BaseURL:  *baseURL,
		Jobs:     *jobs,
		Verbose:  *verbose,
		Progress: *progress,
		Bucket:   *bucket,
		LogLevel: *logLevel,
		WgetArgs: fs.Args(),
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	logger := logging.Setup(cfg.LogLevel, os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[ssmirror] Received interrupt, shutting down...")
		cancel()
	}()

	client := &fetch.Client{
		Caps:      fetch.Probe(ctx),
		Verbose:   cfg.Verbose,
		ExtraArgs: cfg.WgetArgs,
	}

	opts := mirror.Options{
		BaseURL:        cfg.BaseURL,
		Root:           cfg.Root,
		Jobs:           cfg.Jobs,
		Fetcher:        client,
		Progress:       cfg.Progress,
		ProgressOutput: os.Stderr,
		Logger:         logger,
	}

	if cfg.Bucket != "" {
		s, err := sink.Open(ctx, cfg.Bucket)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening bucket: %v\n", err)
			return ExitStorageError
		}
		defer s.Close()
		opts.Sink = s
	}

	summary, err := mirror.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var perr *catalog.ParseError
		if errors.As(err, &perr) {
			return ExitParseError
		}
		var cmdErr *fetch.CommandError
		if errors.As(err, &cmdErr) {
			return ExitFetchError
		}
		return ExitGeneralError
	}

	logger.Info().
		Int("fetched", summary.Fetched).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("run complete")

	if !summary.Ok() {
		fmt.Fprintf(os.Stderr, "%d matrices failed:\n", summary.Failed)
		for _, f := range summary.Failures {
			fmt.Fprintf(os.Stderr, "  %s/%s: %v\n", f.Matrix.Group, f.Matrix.Name, f.Err)
		}
		return ExitFetchError
	}

	return ExitSuccess
}
