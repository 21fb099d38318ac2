// Package extension binds the two user facing commands to a host: capturing a selection
// and describing an object of interest found within it.
package extension

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/baalimago/mathobj/internal/pipeline"
	"github.com/baalimago/mathobj/internal/session"
)

type Extension struct {
	Host     host.Host
	Store    session.Store
	Pipeline *pipeline.Pipeline
	now      func() time.Time
}

func New(h host.Host, store session.Store, p *pipeline.Pipeline) *Extension {
	return &Extension{
		Host:     h,
		Store:    store,
		Pipeline: p,
		now:      time.Now,
	}
}

// Register both commands. Fails if either id is already taken.
func (e *Extension) Register(r *host.Registry) error {
	err := r.Register(host.CmdCaptureSelection, e.CaptureSelection)
	if err != nil {
		return fmt.Errorf("failed to register capture command: %w", err)
	}
	err = r.Register(host.CmdDescribeObject, e.DescribeObject)
	if err != nil {
		return fmt.Errorf("failed to register describe command: %w", err)
	}
	return nil
}

// CaptureSelection reads the active selection and stores it as the session's snapshot,
// replacing any earlier one.
func (e *Extension) CaptureSelection(ctx context.Context, inv host.Invocation) error {
	text, err := e.activeSelection(ctx, inv)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		e.Host.Notify(host.Info, "No text selected.")
		return pipeline.ErrEmptySelection
	}
	err = e.Store.Save(ctx, session.Selection{
		ID:         inv.SessionID,
		Text:       text,
		Source:     inv.Source,
		CapturedAt: e.timestamp(),
	})
	if err != nil {
		e.Host.Notify(host.Error, fmt.Sprintf("Failed to store selection: %v", err))
		return fmt.Errorf("failed to save selection: %w", err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("captured %v bytes into session '%v'\n", len(text), inv.SessionID))
	}
	e.Host.Notify(host.Info, "Selected text captured.")
	return nil
}

// DescribeObject reads the active selection as the object of interest, and describes it
// using the session's snapshot as context
func (e *Extension) DescribeObject(ctx context.Context, inv host.Invocation) error {
	object, err := e.activeSelection(ctx, inv)
	if err != nil {
		return err
	}
	sel, err := e.Store.Load(ctx, inv.SessionID)
	if err != nil {
		e.Host.Notify(host.Error, fmt.Sprintf("Failed to load selection: %v", err))
		return fmt.Errorf("failed to load selection: %w", err)
	}
	return e.Pipeline.Describe(ctx, sel.Text, object)
}

func (e *Extension) activeSelection(ctx context.Context, inv host.Invocation) (string, error) {
	if inv.Selector == nil {
		e.Host.Notify(host.Info, "No open text editor.")
		return "", host.ErrNoActiveEditor
	}
	text, err := inv.Selector.ActiveSelection(ctx)
	if err != nil {
		if errors.Is(err, host.ErrNoActiveEditor) {
			e.Host.Notify(host.Info, "No open text editor.")
			return "", err
		}
		e.Host.Notify(host.Error, fmt.Sprintf("Failed to read selection: %v", err))
		return "", fmt.Errorf("failed to read selection: %w", err)
	}
	return text, nil
}

func (e *Extension) timestamp() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}
