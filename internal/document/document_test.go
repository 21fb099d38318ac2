package document

import (
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/mathobj/internal/prompt"
)

func TestAssemble_listBranch(t *testing.T) {
	completion := `\item purity...`
	got := Assemble(completion)
	testboil.AssertStringContains(t, got, completion)
	testboil.AssertStringContains(t, got, `\begin{itemize}`)
	testboil.AssertStringContains(t, got, `\end{itemize}`)
	if !UsesList(got) {
		t.Fatal("expected list template")
	}
	if !strings.HasPrefix(got, `\documentclass{article}`) {
		t.Fatalf("expected preamble first, got: %v", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(got), `\end{document}`) {
		t.Fatalf("expected postamble last, got: %v", got)
	}
}

func TestAssemble_noInfoBranch(t *testing.T) {
	completion := "No info about this object in text"
	got := Assemble(completion)
	testboil.AssertStringContains(t, got, completion)
	if UsesList(got) {
		t.Fatalf("expected no list environment, got: %v", got)
	}
}

func TestAssemble_sentinelAsSubstring(t *testing.T) {
	completion := "Sorry. " + prompt.NoInfoSentinel + "."
	if UsesList(Assemble(completion)) {
		t.Fatal("sentinel as substring should select the no-list template")
	}
}

func TestAssemble_caseSensitive(t *testing.T) {
	completion := strings.ToLower(prompt.NoInfoSentinel)
	if !UsesList(Assemble(completion)) {
		t.Fatal("lower cased sentinel should not match")
	}
}

func TestAssemble_alwaysContainsInput(t *testing.T) {
	inputs := []string{
		"",
		" ",
		`\item a` + "\n" + `\item b`,
		prompt.NoInfoSentinel,
		"unicode: ρ² ∈ ℝ",
		`\end{document}`,
	}
	for _, in := range inputs {
		got := Assemble(in)
		if !strings.Contains(got, in) {
			t.Errorf("Assemble(%q) does not contain input: %q", in, got)
		}
		testboil.FailTestIfDiff(t, Assemble(in), got)
	}
}
