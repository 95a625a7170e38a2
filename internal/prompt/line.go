package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ClearValue is the answer that empties the current value in a line prompt
const ClearValue = "-"

// Line prompts on a plain reader and writer. It is used when stdin is not a
// terminal or --plain is set.
//
// An empty answer keeps the current value and ClearValue clears it.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a line prompt
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// Input implements TextPrompt
func (l *Line) Input(label, value string) (string, error) {
	if value != "" {
		fmt.Fprintf(l.out, "%s [%s] (Enter keeps, %s clears): ", label, value, ClearValue)
	} else {
		fmt.Fprintf(l.out, "%s: ", label)
	}

	answer, err := l.readLine()
	if err != nil {
		return "", err
	}

	switch answer {
	case "":
		return value, nil
	case ClearValue:
		return "", nil
	}
	return answer, nil
}

// Confirm implements ConfirmPrompt
func (l *Line) Confirm(label string) (bool, error) {
	fmt.Fprintf(l.out, "%s [y/N]: ", label)

	answer, err := l.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (l *Line) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		// a final line without a newline still counts
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.out)
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
