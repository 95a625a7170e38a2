// Package prompt asks the operator for filenames and confirmations, either
// through a small terminal UI or line by line.
package prompt

import "errors"

// ErrAborted is returned when the operator cancels a prompt (Ctrl+C, Esc or
// end of input)
var ErrAborted = errors.New("prompt aborted")

// TextPrompt asks for a line of text. value is shown as the editable
// starting value and the trimmed answer is returned.
type TextPrompt interface {
	Input(label, value string) (string, error)
}

// ConfirmPrompt asks a yes/no question. The default answer is no.
type ConfirmPrompt interface {
	Confirm(label string) (bool, error)
}
