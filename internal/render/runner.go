package render

import (
	"context"
	"os/exec"
)

// Runner executes an external process until it exits. Implementations must return
// once ctx is cancelled.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs the process on the host, returning combined stdout and stderr
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
