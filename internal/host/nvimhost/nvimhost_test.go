package nvimhost

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/mathobj/internal/credential"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

var _ host.Host = &Host{}

type fakeClient struct {
	out      []string
	errs     []string
	commands []string
	lines    [][]byte
}

func (f *fakeClient) WriteOut(str string) error {
	f.out = append(f.out, str)
	return nil
}

func (f *fakeClient) WritelnErr(str string) error {
	f.errs = append(f.errs, str)
	return nil
}

func (f *fakeClient) Command(cmd string) error {
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeClient) SetBufferLines(_ nvim.Buffer, _, _ int, _ bool, replacement [][]byte) error {
	f.lines = replacement
	return nil
}

func TestNotify(t *testing.T) {
	c := &fakeClient{}
	h := &Host{v: c}
	h.Notify(host.Info, "Selected text captured.")
	h.Notify(host.Error, "Error sending text to GPT")
	testboil.FailTestIfDiff(t, strings.Join(c.out, ""), "mathobj: Selected text captured.\n")
	testboil.FailTestIfDiff(t, strings.Join(c.errs, ""), "mathobj: Error sending text to GPT")
}

func TestProgress(t *testing.T) {
	c := &fakeClient{}
	h := &Host{v: c}
	stop := h.Progress("Waiting for GPT")
	stop()
	stop()
	testboil.FailTestIfDiff(t, len(c.out), 1)
	testboil.FailTestIfDiff(t, len(c.commands), 1)
}

func TestEmit(t *testing.T) {
	c := &fakeClient{}
	h := &Host{v: c}
	h.Emit("\\begin{document}\nhi\n\\end{document}\n")
	testboil.FailTestIfDiff(t, len(c.commands), 1)
	testboil.FailTestIfDiff(t, len(c.lines), 3)
	testboil.FailTestIfDiff(t, string(c.lines[1]), "hi")
}

func TestOpenArtifact(t *testing.T) {
	var got string
	h := &Host{v: &fakeClient{}, open: func(p string) error {
		got = p
		return nil
	}}
	if err := h.OpenArtifact("/tmp/a.pdf"); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "/tmp/a.pdf")
}

type varFunc func(name string, result any) error

func (f varFunc) Var(name string, result any) error { return f(name, result) }

func TestVarProvider(t *testing.T) {
	setVar := func(val string) varGetter {
		return varFunc(func(name string, result any) error {
			if name != VarAPIKey {
				return errors.New("unexpected var")
			}
			*(result.(*string)) = val
			return nil
		})
	}
	unset := varFunc(func(string, any) error { return errors.New("Key not found: mathobj_api_key") })

	t.Run("var wins", func(t *testing.T) {
		p := &VarProvider{v: setVar(" sk-var "), Fallback: credential.Static("sk-cfg")}
		got, err := p.Get(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		testboil.FailTestIfDiff(t, got, "sk-var")
	})

	t.Run("blank var falls back", func(t *testing.T) {
		p := &VarProvider{v: setVar("  "), Fallback: credential.Static("sk-cfg")}
		got, err := p.Get(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		testboil.FailTestIfDiff(t, got, "sk-cfg")
	})

	t.Run("unset var falls back", func(t *testing.T) {
		p := &VarProvider{v: unset, Fallback: credential.Static("sk-cfg")}
		got, err := p.Get(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		testboil.FailTestIfDiff(t, got, "sk-cfg")
	})

	t.Run("nothing configured", func(t *testing.T) {
		p := &VarProvider{v: unset}
		_, err := p.Get(context.Background())
		if !errors.Is(err, credential.ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got: %v", err)
		}
	})
}

func TestSelectedText(t *testing.T) {
	tcs := []struct {
		name     string
		lines    []string
		startCol int
		endCol   int
		mode     string
		want     string
	}{
		{
			name:     "charwise single line",
			lines:    []string{"the matrix Tr(A) is nice"},
			startCol: 12,
			endCol:   16,
			mode:     "v",
			want:     "Tr(A)",
		},
		{
			name:     "charwise multi byte end",
			lines:    []string{"let ρ be"},
			startCol: 5,
			endCol:   5,
			mode:     "v",
			want:     "ρ",
		},
		{
			name:     "charwise multi line",
			lines:    []string{"first line", "second line"},
			startCol: 7,
			endCol:   6,
			mode:     "v",
			want:     "line\nsecond",
		},
		{
			name:     "linewise",
			lines:    []string{"a b", "c d"},
			startCol: 1,
			endCol:   2147483647,
			mode:     "V",
			want:     "a b\nc d",
		},
		{
			name:     "blockwise",
			lines:    []string{"abcd", "efgh", "ij"},
			startCol: 2,
			endCol:   3,
			mode:     "\x16",
			want:     "bc\nfg\nj",
		},
		{
			name:     "end beyond line",
			lines:    []string{"abc"},
			startCol: 2,
			endCol:   2147483647,
			mode:     "v",
			want:     "bc",
		},
		{
			name: "no lines",
			mode: "v",
			want: "",
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var lines [][]byte
			for _, l := range tc.lines {
				lines = append(lines, []byte(l))
			}
			got := selectedText(lines, tc.startCol, tc.endCol, tc.mode)
			testboil.FailTestIfDiff(t, got, tc.want)
		})
	}
}

func TestManifest(t *testing.T) {
	got, err := Manifest("mathobj", func(p *plugin.Plugin) error {
		Register(context.Background(), p, host.NewRegistry(), "nvim")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	testboil.AssertStringContains(t, s, CmdSelect)
	testboil.AssertStringContains(t, s, CmdDescribe)
	if !strings.Contains(s, "mathobj") {
		t.Fatalf("expected host name in manifest: %v", s)
	}
	// :'<,'>MathObjSelect fails with E481 unless the command accepts a range
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, "'command'") && !strings.Contains(line, "'range'") {
			t.Fatalf("expected command to accept a range: %v", line)
		}
	}
	testboil.FailTestIfDiff(t, strings.Count(s, "'range'"), 2)
}
