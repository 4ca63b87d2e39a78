package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/markusressel/fan2ipmi/internal/ui"
)

// CmdError is returned when an external command could not be run successfully.
// Output holds whatever the failing invocation wrote to stderr (or stdout, if stderr was empty).
type CmdError struct {
	Executable string
	Args       []string
	Output     string
	Err        error
}

func (e *CmdError) Error() string {
	if len(e.Output) > 0 {
		return fmt.Sprintf("%s: %v: %s", e.CommandLine(), e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.CommandLine(), e.Err)
}

func (e *CmdError) Unwrap() error {
	return e.Err
}

// CommandLine returns the executed command as it would be typed into a shell
func (e *CmdError) CommandLine() string {
	return strings.TrimSpace(e.Executable + " " + strings.Join(e.Args, " "))
}

// SafeCmdExecution runs the given executable, after checking its permissions, and returns its stdout.
// The command is killed once the timeout is reached or the given context is done.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	resolved, err := exec.LookPath(executable)
	if err != nil {
		return "", &CmdError{Executable: executable, Args: args, Err: err}
	}

	if _, err := CheckFilePermissionsForExecution(resolved); err != nil {
		return "", &CmdError{Executable: executable, Args: args, Err: fmt.Errorf("cannot execute %s: %w", resolved, err)}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, resolved, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Debug("Command timed out: %s", executable)
		return "", &CmdError{Executable: executable, Args: args, Err: fmt.Errorf("timed out after %s", timeout)}
	}

	if err != nil {
		output := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output = strings.TrimSpace(string(exitErr.Stderr))
		}
		if len(output) <= 0 {
			output = strings.TrimSpace(string(out))
		}
		ui.Debug("Command failed to execute: %s", executable)
		return "", &CmdError{Executable: executable, Args: args, Output: output, Err: err}
	}

	strout := string(out)
	strout = strings.Trim(strout, "\n")

	return strout, nil
}
