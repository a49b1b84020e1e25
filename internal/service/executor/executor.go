package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandError describes a failure at one stage of running an external command.
type CommandError struct {
	Cmd    string
	Stage  string
	Stderr string
	Cause  error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}
func (e *CommandError) Unwrap() error { return e.Cause }

// Process is a started command whose stdout is being streamed by the caller.
type Process interface {
	// Wait blocks until the command exits. A non-zero exit is returned as *CommandError.
	Wait() error
}

// OSCommandExecutor starts real system commands with os/exec.
type OSCommandExecutor struct {
	maxStderrBytes int
}

// NewOSCommandExecutor creates an executor that keeps at most maxStderrBytes of stderr
// per command for error reporting.
func NewOSCommandExecutor(maxStderrBytes int64) *OSCommandExecutor {
	if maxStderrBytes < 1 {
		panic("maxStderrBytes must be >= 1")
	}
	return &OSCommandExecutor{maxStderrBytes: int(maxStderrBytes)}
}

// Start launches command in dir and returns its stdout stream. The caller must read
// stdout (or stop reading) and then call Wait. Cancelling ctx kills the process.
func (e *OSCommandExecutor) Start(ctx context.Context, command []string, dir string) (Process, io.Reader, error) {
	if len(command) == 0 {
		return nil, nil, os.ErrInvalid
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Stdin = nil

	stderr := newCollector(e.maxStderrBytes)
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	return &osProcess{name: command[0], cmd: cmd, stderr: stderr}, stdout, nil
}

type osProcess struct {
	name   string
	cmd    *exec.Cmd
	stderr *collector
}

func (p *osProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return &CommandError{Cmd: p.name, Stage: "execution", Stderr: p.stderr.String(), Cause: err}
	}
	return nil
}

// ExitCode extracts the exit status from an error returned by Wait, or -1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
