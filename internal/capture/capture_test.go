package capture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestArgs(t *testing.T) {
	got, err := Args([]string{"In", "quantum", "computing"}).ActiveSelection(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "In quantum computing")
}

func TestStdin(t *testing.T) {
	tcs := []struct {
		name    string
		replace string
		args    []string
		pipe    bool
		stdin   string
		want    string
	}{
		{name: "no pipe", args: []string{"a", "b"}, want: "a b"},
		{name: "pipe only", pipe: true, stdin: "the density matrix", want: "the density matrix"},
		{name: "replace token", replace: "{}", args: []string{"text:", "{}"}, pipe: true, stdin: "ρ", want: "text: ρ"},
		{name: "no token given", args: []string{"keep"}, pipe: true, stdin: "ignored", want: "keep"},
		{name: "empty", want: ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s := stdinSelector{
				stdinReplace: tc.replace,
				args:         tc.args,
				in:           strings.NewReader(tc.stdin),
				hasPipe:      func() bool { return tc.pipe },
			}
			got, err := s.ActiveSelection(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}

func TestStdin_doesNotMutateArgs(t *testing.T) {
	args := []string{"{}"}
	s := stdinSelector{stdinReplace: "{}", args: args, in: strings.NewReader("x"), hasPipe: func() bool { return true }}
	if _, err := s.ActiveSelection(context.Background()); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, args[0], "{}")
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.tex"), []byte("first\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.tex"), []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Glob(filepath.Join(dir, "*.tex")).ActiveSelection(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "first\n\nsecond")

	_, err = Glob(filepath.Join(dir, "*.md")).ActiveSelection(context.Background())
	if err == nil {
		t.Fatal("expected error when no files match")
	}
}

func TestURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><style>p { color: red; }</style><script>var x = 1;</script></head>
<body><h1>Density matrices</h1><p>  A state is pure iff Tr(ρ²) = 1.  </p></body></html>`))
	}))
	defer ts.Close()

	got, err := URL(ts.URL, ts.Client()).ActiveSelection(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "Density matrices\nA state is pure iff Tr(ρ²) = 1.")
}

func TestURL_non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()
	_, err := URL(ts.URL, ts.Client()).ActiveSelection(context.Background())
	if err == nil {
		t.Fatal("expected error on non-200")
	}
}

func TestURL_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := URL("http://example.invalid", nil).ActiveSelection(ctx)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}
