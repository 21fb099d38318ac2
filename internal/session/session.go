// Package session keeps the captured selection of a workflow until the object of
// interest is described. Each workflow has its own id, so overlapping workflows never
// overwrite each other's selection.
package session

import (
	"context"
	"errors"
	"strings"
	"time"
)

const DefaultID = "default"

var ErrInvalidID = errors.New("invalid session id")

type Selection struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Source     string    `json:"source"`
	CapturedAt time.Time `json:"captured_at"`
}

// Store of selections. Loading an id which has never been saved returns an empty
// Selection and no error.
type Store interface {
	Save(ctx context.Context, sel Selection) error
	Load(ctx context.Context, id string) (Selection, error)
	Delete(ctx context.Context, id string) error
}

// sanitizeID so that it may be used as a file name
func sanitizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." {
		return "", ErrInvalidID
	}
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String(), nil
}
