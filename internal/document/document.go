// Package document wraps a completion in a LaTeX document.
package document

import (
	"strings"

	"github.com/baalimago/mathobj/internal/prompt"
)

const (
	preamble = `\documentclass{article}
\usepackage[utf8]{inputenc}
\usepackage{amsmath}
\usepackage{amssymb}
\begin{document}
`
	postamble = `
\end{document}
`
	listBegin = `\begin{itemize}
`
	listEnd = `
\end{itemize}`
)

// Assemble the document source for completion. When the completion carries the no-info
// sentinel it's placed as plain text, otherwise it's expected to consist of \item lines
// and is wrapped in an itemize environment.
func Assemble(completion string) string {
	var b strings.Builder
	b.WriteString(preamble)
	if strings.Contains(completion, prompt.NoInfoSentinel) {
		b.WriteString(completion)
	} else {
		b.WriteString(listBegin)
		b.WriteString(completion)
		b.WriteString(listEnd)
	}
	b.WriteString(postamble)
	return b.String()
}

// UsesList reports if doc was assembled with the list environment
func UsesList(doc string) bool {
	return strings.Contains(doc, listBegin)
}
