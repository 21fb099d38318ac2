// Package host abstracts the environment the commands run in: an editor, a terminal.
package host

import (
	"context"
	"errors"
)

type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

var ErrNoActiveEditor = errors.New("no active editor")

// Host is the set of capabilities the commands need from their environment
type Host interface {
	// Notify the user, without blocking
	Notify(level Level, msg string)
	// Progress shows msg until stop is called. Calling stop more than once is safe.
	Progress(msg string) (stop func())
	// OpenArtifact at path using whatever viewer the environment prefers
	OpenArtifact(path string) error
	// Emit raw output, such as a document source
	Emit(s string)
}

// Selector returns the text the user currently has selected
type Selector interface {
	ActiveSelection(ctx context.Context) (string, error)
}

type SelectorFunc func(ctx context.Context) (string, error)

func (f SelectorFunc) ActiveSelection(ctx context.Context) (string, error) { return f(ctx) }

// StaticSelector always returns the same text
type StaticSelector string

func (s StaticSelector) ActiveSelection(_ context.Context) (string, error) { return string(s), nil }
