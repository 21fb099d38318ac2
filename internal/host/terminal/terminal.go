// Package terminal implements the host for command line usage.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/mathobj/internal/host"
)

type Host struct {
	// Out receives emitted output
	Out io.Writer
	// ProgressOut receives the waiting animation. Left nil, no animation is shown.
	ProgressOut *os.File
	open        func(string) error
	mu          sync.Mutex
}

func New() *Host {
	return &Host{
		Out:         os.Stdout,
		ProgressOut: os.Stderr,
		open:        host.OpenFile,
	}
}

func (h *Host) Notify(level host.Level, msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch level {
	case host.Error:
		ancli.Errf("%v\n", msg)
	case host.Warn:
		ancli.Warnf("%v\n", msg)
	default:
		ancli.Noticef("%v\n", msg)
	}
}

func (h *Host) Progress(msg string) func() {
	if h.ProgressOut == nil {
		return func() {}
	}
	stop := startAnimation(h.ProgressOut, msg)
	var once sync.Once
	return func() { once.Do(stop) }
}

func (h *Host) OpenArtifact(path string) error {
	if h.open == nil {
		return fmt.Errorf("no opener configured")
	}
	return h.open(path)
}

func (h *Host) Emit(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Fprint(h.Out, s)
}
