// Package hosttest provides a host which records every interaction, for use in tests.
package hosttest

import (
	"sync"

	"github.com/baalimago/mathobj/internal/host"
)

type Notification struct {
	Level host.Level
	Msg   string
}

type Recorder struct {
	mu              sync.Mutex
	Notifications   []Notification
	Opened          []string
	Emitted         []string
	ProgressStarted int
	ProgressStopped int
	// OpenErr is returned by OpenArtifact, when set
	OpenErr error
}

func (r *Recorder) Notify(level host.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications = append(r.Notifications, Notification{Level: level, Msg: msg})
}

func (r *Recorder) Progress(_ string) func() {
	r.mu.Lock()
	r.ProgressStarted++
	r.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.ProgressStopped++
			r.mu.Unlock()
		})
	}
}

func (r *Recorder) OpenArtifact(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Opened = append(r.Opened, path)
	return r.OpenErr
}

func (r *Recorder) Emit(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Emitted = append(r.Emitted, s)
}

// Errors returns the notifications at level host.Error
func (r *Recorder) Errors() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ret []Notification
	for _, n := range r.Notifications {
		if n.Level == host.Error {
			ret = append(ret, n)
		}
	}
	return ret
}
