package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// DefaultTool is the retrieval tool invoked when Client.Tool is empty.
const DefaultTool = "wget"

// Outcome reports one completed fetch attempt.
type Outcome struct {
	// Command is the full command line that was run, tool first.
	Command []string

	// Stdout and Stderr hold the captured output streams.
	Stdout string
	Stderr string
}

// CommandError reports a retrieval tool run that exited nonzero. It carries
// the exact command line and the captured output so failures can be
// reproduced by hand.
type CommandError struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d\ncommand: %s\nstdout: %s\nstderr: %s",
		e.ExitCode, strings.Join(e.Command, " "), e.Stdout, e.Stderr)
}

// Client invokes the external retrieval tool. The zero value is usable and
// runs wget quietly with no extra arguments.
type Client struct {
	// Tool is the executable to invoke. Default: wget.
	Tool string

	// Caps gates optional flags; obtain it from Probe at startup.
	Caps Capabilities

	// Verbose disables quiet mode and enables the progress bar when the
	// tool supports it.
	Verbose bool

	// ExtraArgs are passed through to the tool, after the destination
	// directory flag and before the URL.
	ExtraArgs []string

	// Output receives the tool's combined output as it arrives, so
	// long-running transfers stay visible. Default: os.Stdout.
	Output io.Writer
}

// Fetch downloads url into destDir with overwrite-if-newer semantics. The
// tool's combined output is streamed to c.Output and captured in the
// returned Outcome. A nonzero exit status yields a *CommandError; Fetch
// never retries.
func (c *Client) Fetch(ctx context.Context, url, destDir string) (*Outcome, error) {
	tool := c.Tool
	if tool == "" {
		tool = DefaultTool
	}

	out := c.Output
	if out == nil {
		out = os.Stdout
	}

	args := c.arguments(url, destDir)
	command := append([]string{tool}, args...)

	cmd := exec.CommandContext(ctx, tool, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("fetch %s: start %s: %w", url, tool, err)
	}

	// Drain both pipes concurrently so the subprocess can never block on a
	// full pipe, and so Wait returns promptly once it exits even after a
	// long silent stretch.
	live := &lockedWriter{w: out}
	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		io.Copy(io.MultiWriter(&stdout, live), stdoutPipe)
	}()
	go func() {
		defer wg.Done()
		io.Copy(io.MultiWriter(&stderr, live), stderrPipe)
	}()
	wg.Wait()

	outcome := &Outcome{Command: command}
	err = cmd.Wait()
	outcome.Stdout = stdout.String()
	outcome.Stderr = stderr.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return outcome, &CommandError{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stdout:   outcome.Stdout,
				Stderr:   outcome.Stderr,
			}
		}
		return outcome, fmt.Errorf("fetch %s: %w", url, err)
	}

	return outcome, nil
}

// arguments builds the tool's argument list. The order is fixed: the
// destination directory flag precedes the passthrough arguments so it
// cannot be swallowed by them, and the URL always comes last.
func (c *Client) arguments(url, destDir string) []string {
	args := []string{"-N"}
	if !c.Verbose {
		args = append(args, "-q")
	}
	if c.Verbose && c.Caps.ShowProgress {
		args = append(args, "--show-progress", "--progress=bar:force:noscroll")
	}
	args = append(args, "-P", destDir)
	args = append(args, c.ExtraArgs...)
	args = append(args, url)
	return args
}

// lockedWriter serializes writes from the two pipe readers onto one stream.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
