package rename

import (
	"fmt"
	"io"
	"strings"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/prompt"
)

const (
	filenameLabel = "New filename (clear to skip):"

	invalidDateMessage = "Error: Filename must start with YYYY.MM.DD format"
	invalidPathMessage = "Error: Filename must not contain a directory"
)

// DecisionPrompter asks the operator what a file should be called
type DecisionPrompter struct {
	text prompt.TextPrompt
	out  io.Writer
}

// NewDecisionPrompter creates a DecisionPrompter that writes context to out
func NewDecisionPrompter(text prompt.TextPrompt, out io.Writer) *DecisionPrompter {
	return &DecisionPrompter{text: text, out: out}
}

// Decide shows the original name and the suggestion, if any, then prompts
// until the operator either clears the value or enters a valid filename.
// Errors come only from the prompt itself, such as prompt.ErrAborted.
func (p *DecisionPrompter) Decide(original, suggested string) (document.Decision, error) {
	fmt.Fprintf(p.out, "\nOriginal: %s\n", original)
	if suggested != "" {
		fmt.Fprintf(p.out, "Suggested: %s\n", suggested)
	} else {
		fmt.Fprintln(p.out, "Could not extract fields automatically.")
	}

	value := suggested
	for {
		answer, err := p.text.Input(filenameLabel, value)
		if err != nil {
			return document.Decision{}, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return document.SkipDecision(), nil
		}

		if msg := validateFilename(answer); msg != "" {
			fmt.Fprintln(p.out, msg)
			value = answer
			continue
		}
		return document.Rename(answer), nil
	}
}

// validateFilename returns the message to show for an unacceptable name,
// or "" when the name can be used
func validateFilename(name string) string {
	if strings.ContainsAny(name, `/\`) {
		return invalidPathMessage
	}
	if !document.IsConforming(name) {
		return invalidDateMessage
	}
	return ""
}
