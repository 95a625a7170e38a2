package rename

import (
	"errors"
	"fmt"
)

// Fatal run conditions. A run that fails with one of these has not touched
// any file.
var (
	ErrNoSourceDirectory         = errors.New("source directory does not exist")
	ErrTextExtractorNotInstalled = errors.New("text extractor not installed")
	ErrLLMNotInstalled           = errors.New("llm not installed")
	ErrLLMNotRunning             = errors.New("llm not running")
	ErrNoPDFsFound               = errors.New("no PDFs found")
	ErrAllFilesConforming        = errors.New("all files already named")
)

// Error is a fatal run condition for a directory. Kind is one of the
// sentinels above and Err, when set, is the underlying cause.
type Error struct {
	Kind error
	Dir  string
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrNoSourceDirectory:
		msg = fmt.Sprintf("source directory %s does not exist", e.Dir)
	case ErrNoPDFsFound:
		msg = fmt.Sprintf("no PDFs found in %s", e.Dir)
	case ErrAllFilesConforming:
		msg = fmt.Sprintf("all files already named in %s", e.Dir)
	default:
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
