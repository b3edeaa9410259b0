// Package script runs AppleScript through osascript. It is the second
// control tier: when the accessibility layer cannot activate an element,
// the same intent is retried as a script addressed to the application by
// name.
package script

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds one script execution. Scripts drive a GUI and can
// hang on modal dialogs; the bound turns a hang into an error.
const DefaultTimeout = 10 * time.Second

// ErrTimeout is returned when a script exceeds the runner's timeout.
var ErrTimeout = errors.New("script timed out")

// Runner executes AppleScript source.
type Runner struct {
	// Timeout overrides DefaultTimeout when > 0.
	Timeout time.Duration

	// execute runs the script source and returns its stdout. Replaced in
	// tests.
	execute func(ctx context.Context, source string) (string, error)
}

// NewRunner returns a Runner backed by the osascript binary.
func NewRunner() *Runner {
	return &Runner{execute: runOsascript}
}

// Run executes source and returns its trimmed stdout.
func (r *Runner) Run(ctx context.Context, source string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	execute := r.execute
	if execute == nil {
		execute = runOsascript
	}
	out, err := execute(ctx, source)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func runOsascript(ctx context.Context, source string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", source)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("osascript: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("osascript: %w", err)
	}
	return string(out), nil
}
