package prompt

import "strings"

// NoInfoSentinel is emitted verbatim by the model when the text says nothing about the object
const NoInfoSentinel = "No info about this object in text"

const (
	sourcePlaceholder = "{{SOURCE_TEXT}}"
	objectPlaceholder = "{{OBJECT}}"
)

const template = `You are given an excerpt of a mathematical text and a mathematical object which appears in it.
List every property of the object which is stated in, or directly follows from, the excerpt.
Only use information from the excerpt. If the excerpt contains no information about the object, answer with exactly this sentence and nothing else: "` + NoInfoSentinel + `"

Format the answer as LaTeX list items. Start every property with "\item " on its own line.
Write mathematics in inline math mode. Do not add a preamble, a list environment or any other text.

Example:
Text: """Let $G$ be a finite group of order $p^2$ where $p$ is prime. Then $G$ is abelian, and every element of $G$ has order dividing $p^2$."""
Object: """$G$"""
Answer:
\item $G$ is a finite group.
\item $|G| = p^2$ for a prime $p$.
\item $G$ is abelian.
\item The order of every element of $G$ divides $p^2$.

Text: """` + sourcePlaceholder + `"""
Object: """` + objectPlaceholder + `"""
Answer:
`

// Build the prompt asking for the properties of objectOfInterest found in sourceText. The
// input is placed into the template as-is.
func Build(sourceText, objectOfInterest string) string {
	r := strings.NewReplacer(
		sourcePlaceholder, sourceText,
		objectPlaceholder, objectOfInterest,
	)
	return r.Replace(template)
}
