package host

import (
	"context"
	"errors"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestRegistry_InvokeRegistered(t *testing.T) {
	r := NewRegistry()
	var got Invocation
	err := r.Register(CmdCaptureSelection, func(ctx context.Context, inv Invocation) error {
		got = inv
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Invocation{SessionID: "s1", Selector: StaticSelector("text")}
	if err := r.Invoke(context.Background(), CmdCaptureSelection, want); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got.SessionID, "s1")
	sel, _ := got.Selector.ActiveSelection(context.Background())
	testboil.FailTestIfDiff(t, sel, "text")
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	h := func(ctx context.Context, inv Invocation) error { return nil }
	if err := r.Register("a", h); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("a", h); err == nil {
		t.Fatal("expected error on duplicate registration")
	}
}

func TestRegistry_Unknown(t *testing.T) {
	err := NewRegistry().Invoke(context.Background(), "nope", Invocation{})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got: %v", err)
	}
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	h := func(ctx context.Context, inv Invocation) error { return nil }
	for _, id := range []string{CmdDescribeObject, CmdCaptureSelection, "b"} {
		if err := r.Register(id, h); err != nil {
			t.Fatal(err)
		}
	}
	got := r.IDs()
	want := []string{"b", CmdCaptureSelection, CmdDescribeObject}
	testboil.FailTestIfDiff(t, len(got), len(want))
	for i := range want {
		testboil.FailTestIfDiff(t, got[i], want[i])
	}
}

func TestOpenCommand(t *testing.T) {
	tcs := []struct {
		goos     string
		wantName string
	}{
		{goos: "darwin", wantName: "open"},
		{goos: "windows", wantName: "rundll32"},
		{goos: "linux", wantName: "xdg-open"},
		{goos: "freebsd", wantName: "xdg-open"},
	}
	for _, tc := range tcs {
		t.Run(tc.goos, func(t *testing.T) {
			name, args := openCommand(tc.goos, "/tmp/x.pdf")
			testboil.FailTestIfDiff(t, name, tc.wantName)
			testboil.FailTestIfDiff(t, args[len(args)-1], "/tmp/x.pdf")
		})
	}
}

func TestLevelString(t *testing.T) {
	testboil.FailTestIfDiff(t, Info.String(), "info")
	testboil.FailTestIfDiff(t, Warn.String(), "warn")
	testboil.FailTestIfDiff(t, Error.String(), "error")
}
