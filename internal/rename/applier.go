package rename

import (
	"fmt"
	"log/slog"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/prompt"
)

// Applier carries out rename decisions inside one directory
type Applier struct {
	storage Storage
	confirm prompt.ConfirmPrompt
	logger  *slog.Logger
}

// NewApplier creates an Applier
func NewApplier(storage Storage, confirm prompt.ConfirmPrompt, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{storage: storage, confirm: confirm, logger: logger}
}

// Apply performs decision for the file named original. When the target
// already exists the operator is asked before it is overwritten; declining
// leaves both files alone.
func (a *Applier) Apply(original string, decision document.Decision) (OutcomeAction, error) {
	if decision.Action != document.ActionRename {
		return OutcomeSkipped, nil
	}

	target := decision.Filename
	if target == original {
		return OutcomeRenamed, nil
	}

	exists, err := a.storage.Exists(target)
	if err != nil {
		return "", fmt.Errorf("checking for %s: %w", target, err)
	}
	if exists {
		ok, err := a.confirm.Confirm(fmt.Sprintf("File %s already exists. Overwrite?", target))
		if err != nil {
			return "", err
		}
		if !ok {
			a.logger.Info("Kept existing file", "original", original, "target", target)
			return OutcomeDeclinedOverwrite, nil
		}
	}

	if err := a.storage.Rename(original, target); err != nil {
		return "", fmt.Errorf("renaming %s: %w", original, err)
	}
	a.logger.Debug("Renamed file", "original", original, "target", target)
	return OutcomeRenamed, nil
}
