package fetch

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jamtrott/suitesparse-tools/internal/testutils"
)

func TestArguments(t *testing.T) {
	const (
		url     = "https://example.com/MM/HB/west0067.tar.gz"
		destDir = "/tmp/out/HB"
	)

	tests := []struct {
		name   string
		client Client
		want   []string
	}{
		{
			name:   "quiet by default",
			client: Client{},
			want:   []string{"-N", "-q", "-P", destDir, url},
		},
		{
			name:   "verbose without progress support",
			client: Client{Verbose: true},
			want:   []string{"-N", "-P", destDir, url},
		},
		{
			name:   "verbose with progress support",
			client: Client{Verbose: true, Caps: Capabilities{ShowProgress: true}},
			want: []string{
				"-N", "--show-progress", "--progress=bar:force:noscroll",
				"-P", destDir, url,
			},
		},
		{
			name:   "progress support alone stays quiet",
			client: Client{Caps: Capabilities{ShowProgress: true}},
			want:   []string{"-N", "-q", "-P", destDir, url},
		},
		{
			name:   "passthrough args sit between dest dir and url",
			client: Client{ExtraArgs: []string{"--limit-rate=1m", "--no-check-certificate"}},
			want: []string{
				"-N", "-q", "-P", destDir,
				"--limit-rate=1m", "--no-check-certificate", url,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.client.arguments(url, destDir)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("arguments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchSuccess(t *testing.T) {
	dir := t.TempDir()
	tool := testutils.FakeTool(t, dir, "wget", `#!/bin/sh
echo "saving to $@"
echo "some note" >&2
exit 0
`)

	var streamed bytes.Buffer
	client := &Client{Tool: tool, Output: &streamed}

	outcome, err := client.Fetch(context.Background(), "https://example.com/file", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.Contains(outcome.Stdout, "saving to") {
		t.Errorf("stdout not captured: %q", outcome.Stdout)
	}
	if !strings.Contains(outcome.Stderr, "some note") {
		t.Errorf("stderr not captured: %q", outcome.Stderr)
	}
	if got := streamed.String(); !strings.Contains(got, "saving to") || !strings.Contains(got, "some note") {
		t.Errorf("combined output not streamed to writer: %q", got)
	}
	if outcome.Command[0] != tool {
		t.Errorf("command records tool %q, want %q", outcome.Command[0], tool)
	}
	if last := outcome.Command[len(outcome.Command)-1]; last != "https://example.com/file" {
		t.Errorf("url is not the final argument: %q", last)
	}
}

func TestFetchFailure(t *testing.T) {
	dir := t.TempDir()
	tool := testutils.FakeTool(t, dir, "wget", `#!/bin/sh
echo "partial output"
echo "404 Not Found" >&2
exit 8
`)

	client := &Client{Tool: tool, Output: &bytes.Buffer{}}

	_, err := client.Fetch(context.Background(), "https://example.com/missing", dir)
	if err == nil {
		t.Fatal("expected an error for nonzero exit")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T: %v", err, err)
	}
	if cmdErr.ExitCode != 8 {
		t.Errorf("ExitCode = %d, want 8", cmdErr.ExitCode)
	}
	if !strings.Contains(cmdErr.Stdout, "partial output") {
		t.Errorf("stdout missing from error: %q", cmdErr.Stdout)
	}
	if !strings.Contains(cmdErr.Stderr, "404 Not Found") {
		t.Errorf("stderr missing from error: %q", cmdErr.Stderr)
	}
	if len(cmdErr.Command) == 0 || cmdErr.Command[0] != tool {
		t.Errorf("command line missing from error: %v", cmdErr.Command)
	}
	if !strings.Contains(cmdErr.Error(), "exit code 8") {
		t.Errorf("error message missing exit code: %q", cmdErr.Error())
	}
}

func TestFetchToolMissing(t *testing.T) {
	client := &Client{Tool: "/nonexistent/wget", Output: &bytes.Buffer{}}

	_, err := client.Fetch(context.Background(), "https://example.com/file", t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a missing tool")
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		t.Fatalf("start failure should not be a *CommandError: %v", err)
	}
}
