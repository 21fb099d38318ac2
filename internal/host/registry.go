package host

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

const (
	CmdCaptureSelection = "mathobj.captureSelection"
	CmdDescribeObject   = "mathobj.describeObject"
)

var ErrUnknownCommand = errors.New("unknown command")

// Invocation is the input of a single command run. SessionID groups invocations which
// belong to the same workflow, such as capturing a selection and then describing an object.
type Invocation struct {
	SessionID string
	Selector  Selector
	// Source describes where the selection comes from, such as a buffer name or a file glob
	Source string
}

type Handler func(ctx context.Context, inv Invocation) error

// Registry maps command ids to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(id string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[id]; exists {
		return fmt.Errorf("command '%v' already registered", id)
	}
	r.handlers[id] = h
	return nil
}

func (r *Registry) Invoke(ctx context.Context, id string, inv Invocation) error {
	r.mu.RLock()
	h, ok := r.handlers[id]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: '%v'", ErrUnknownCommand, id)
	}
	return h(ctx, inv)
}

// IDs of all registered commands, sorted
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := maps.Keys(r.handlers)
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}
