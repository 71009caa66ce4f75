// Package command abstracts external process invocation so callers can be
// unit tested without real executables.
package command

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes an external command and returns its captured stdout and
// stderr. A nonzero exit status is reported through err as *exec.ExitError;
// stderr is still populated in that case.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// Compile-time interface satisfaction check.
var _ Runner = ExecRunner{}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}
