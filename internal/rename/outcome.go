package rename

import (
	"time"

	"github.com/infews/parkive/internal/document"
)

// OutcomeAction is what happened to a file during a run
type OutcomeAction string

const (
	OutcomeRenamed           OutcomeAction = "renamed"
	OutcomeSkipped           OutcomeAction = "skipped"
	OutcomeNoText            OutcomeAction = "no-text"
	OutcomeDeclinedOverwrite OutcomeAction = "declined-overwrite"
)

// Outcome records the result for one file
type Outcome struct {
	Original         string
	Renamed          string
	Action           OutcomeAction
	Fields           document.Fields
	ExtractionFailed bool
}

// Summary describes a run over one directory
type Summary struct {
	RunID      string
	Dir        string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
}

// Count returns how many files ended with action
func (s *Summary) Count(action OutcomeAction) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}
