package fetch

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
)

// Capabilities describes which optional flags the installed retrieval tool
// accepts.
type Capabilities struct {
	// ShowProgress reports whether the tool accepts --show-progress.
	// wget grew the option in 1.16.
	ShowProgress bool
}

// Probe runs `wget --version` and derives the tool's capabilities. Call it
// once at startup and hand the result to every Client. A failed probe
// degrades to zero capabilities; transfers still work without the optional
// flags.
func Probe(ctx context.Context) Capabilities {
	return ProbeTool(ctx, DefaultTool)
}

// ProbeTool probes a specific executable instead of the default wget.
func ProbeTool(ctx context.Context, tool string) Capabilities {
	out, err := exec.CommandContext(ctx, tool, "--version").Output()
	if err != nil {
		return Capabilities{}
	}
	return capabilitiesFromVersion(string(out))
}

func capabilitiesFromVersion(output string) Capabilities {
	major, minor, ok := parseToolVersion(output)
	if !ok {
		return Capabilities{}
	}
	return Capabilities{
		ShowProgress: major == 1 && minor >= 16,
	}
}

// parseToolVersion extracts the version from output whose first line reads
// like "GNU Wget 1.21.3 built on linux-gnu.".
func parseToolVersion(output string) (major, minor int, ok bool) {
	line := output
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, false
	}

	parts := strings.Split(fields[2], ".")
	if len(parts) < 2 {
		return 0, 0, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
