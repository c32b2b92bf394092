package rag

import (
	"fmt"
	"strings"
)

// FallbackPrompt asks the model to answer from general legal knowledge.
func FallbackPrompt(question string) string {
	return fmt.Sprintf(`You are a helpful Indian Legal Assistant.

Answer the following legal question using your general legal knowledge.

Question: %s
Answer:`, question)
}

// AugmentedPrompt asks the model to answer from the retrieved sections.
func AugmentedPrompt(question string, matches []Match) string {
	return fmt.Sprintf(`You are a helpful Indian Legal Assistant.
Use the following legal sections to answer the user's question:

%s

Question: %s
Answer:`, FormatContext(matches), question)
}

// FormatContext renders matches as "section_no - heading\ntext" blocks separated by blank lines.
// The context is not truncated.
func FormatContext(matches []Match) string {
	blocks := make([]string, len(matches))
	for i, m := range matches {
		blocks[i] = fmt.Sprintf("%s - %s\n%s", m.SectionNo, m.Heading, m.Text)
	}
	return strings.Join(blocks, "\n\n")
}
