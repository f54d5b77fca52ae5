package fetch

import (
	"context"
	"testing"
)

func TestCapabilitiesFromVersion(t *testing.T) {
	tests := []struct {
		name         string
		output       string
		showProgress bool
	}{
		{
			name:         "modern wget",
			output:       "GNU Wget 1.21.3 built on linux-gnu.\n\n-cares +digest -gpgme\n",
			showProgress: true,
		},
		{
			name:         "exactly 1.16",
			output:       "GNU Wget 1.16 built on linux-gnu.\n",
			showProgress: true,
		},
		{
			name:         "pre-1.16",
			output:       "GNU Wget 1.14 built on linux-gnu.\n",
			showProgress: false,
		},
		{
			name:         "wget2 uses a different flag set",
			output:       "GNU Wget2 2.0.1 - multithreaded metalink/file/website downloader\n",
			showProgress: false,
		},
		{
			name:         "garbage output",
			output:       "not a version string",
			showProgress: false,
		},
		{
			name:         "empty output",
			output:       "",
			showProgress: false,
		},
		{
			name:         "non-numeric version",
			output:       "GNU Wget one.sixteen built on linux-gnu.\n",
			showProgress: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := capabilitiesFromVersion(tt.output)
			if caps.ShowProgress != tt.showProgress {
				t.Errorf("ShowProgress = %v, want %v", caps.ShowProgress, tt.showProgress)
			}
		})
	}
}

func TestProbeToolMissing(t *testing.T) {
	caps := ProbeTool(context.Background(), "/nonexistent/wget")
	if caps.ShowProgress {
		t.Error("expected zero capabilities for a missing tool")
	}
}
