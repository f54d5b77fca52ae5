// Package fetch wraps the external wget tool used for byte transfer.
//
// The package deliberately does not implement HTTP itself: one Fetch call
// invokes wget once with overwrite-if-newer semantics (-N) and reports the
// outcome. Retry policy, if any, belongs to the caller or to wget's own
// flags passed through ExtraArgs.
//
// # Usage
//
//	caps := fetch.Probe(ctx)
//	client := &fetch.Client{Caps: caps, Verbose: true}
//	outcome, err := client.Fetch(ctx, url, destDir)
//	var cmdErr *fetch.CommandError
//	if errors.As(err, &cmdErr) {
//	    // cmdErr.ExitCode, cmdErr.Stdout, cmdErr.Stderr, cmdErr.Command
//	}
//
// The capability probe runs wget --version once; pass the result into every
// Client instead of caching it in package state so tests can inject any
// capability set.
package fetch
