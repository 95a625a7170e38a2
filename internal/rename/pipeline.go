// Package rename walks a directory of PDFs and renames each one to the
// archive naming convention with help from a language model and the operator.
package rename

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/extraction"
	"github.com/infews/parkive/internal/llm"
	"github.com/infews/parkive/internal/prompt"
	"github.com/infews/parkive/internal/textextract"
)

// IDGenerator generates unique IDs for runs and journal records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// FieldExtractor infers a document's fields from its text
type FieldExtractor interface {
	Extract(ctx context.Context, text string) extraction.Result
}

// Config holds the collaborators of a Pipeline
type Config struct {
	TextExtractor textextract.Extractor
	Generator     llm.Generator
	Fields        FieldExtractor
	TextPrompt    prompt.TextPrompt
	ConfirmPrompt prompt.ConfirmPrompt

	// Journal is optional
	Journal Journal

	// Out receives operator-facing text. Defaults to os.Stdout.
	Out io.Writer

	// Verbose lists the files to process before starting
	Verbose bool

	Logger *slog.Logger
}

// Pipeline renames the PDFs of a directory one at a time
type Pipeline struct {
	cfg         Config
	out         io.Writer
	logger      *slog.Logger
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewPipeline creates a Pipeline with a UUID generator and the wall clock
func NewPipeline(cfg Config) *Pipeline {
	return NewPipelineWithDeps(cfg, &uuidGenerator{}, &defaultTimeSource{})
}

// NewPipelineWithDeps creates a Pipeline with custom dependencies for testing
func NewPipelineWithDeps(cfg Config, idGen IDGenerator, timeSrc TimeSource) *Pipeline {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:         cfg,
		out:         out,
		logger:      logger,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Run checks the environment, then processes every PDF in dir that does
// not already follow the naming convention.
//
// Fatal conditions found before processing are *Error values. Once
// processing starts a Summary is always returned; the run stops early only
// when ctx is cancelled or a prompt is aborted, leaving the remaining files
// untouched.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Summary, error) {
	if err := p.preflight(ctx, dir); err != nil {
		return nil, err
	}

	scan, err := document.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(scan.PDFs) == 0 {
		return nil, &Error{Kind: ErrNoPDFsFound, Dir: dir}
	}
	if len(scan.Candidates) == 0 {
		return nil, &Error{Kind: ErrAllFilesConforming, Dir: dir}
	}

	storage, err := NewLocalStorage(dir)
	if err != nil {
		return nil, &Error{Kind: ErrNoSourceDirectory, Dir: dir, Err: err}
	}
	applier := NewApplier(storage, p.cfg.ConfirmPrompt, p.logger)
	prompter := NewDecisionPrompter(p.cfg.TextPrompt, p.out)

	summary := &Summary{
		RunID:     p.idGenerator.Generate(),
		Dir:       dir,
		StartedAt: p.timeSource.Now(),
	}
	defer func() {
		summary.FinishedAt = p.timeSource.Now()
	}()

	if p.cfg.Verbose {
		fmt.Fprintln(p.out, "Files to process:")
		for _, path := range scan.Candidates {
			fmt.Fprintf(p.out, "  %s\n", filepath.Base(path))
		}
	}

	p.logger.Info("Processing directory",
		"dir", dir,
		"run_id", summary.RunID,
		"pdfs", len(scan.PDFs),
		"candidates", len(scan.Candidates),
	)

	for _, path := range scan.Candidates {
		name := filepath.Base(path)
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("stopping before %s: %w", name, err)
		}

		outcome, err := p.processFile(ctx, dir, name, prompter, applier)
		if err != nil {
			return summary, err
		}
		summary.Outcomes = append(summary.Outcomes, outcome)

		if outcome.Action == OutcomeRenamed {
			p.record(summary, outcome)
		}
	}

	return summary, nil
}

func (p *Pipeline) preflight(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &Error{Kind: ErrNoSourceDirectory, Dir: dir}
	}

	if err := p.cfg.TextExtractor.Check(); err != nil {
		return &Error{Kind: ErrTextExtractorNotInstalled, Dir: dir, Err: err}
	}
	if err := p.cfg.Generator.CheckInstalled(); err != nil {
		return &Error{Kind: ErrLLMNotInstalled, Dir: dir, Err: err}
	}
	if err := p.cfg.Generator.Ping(ctx); err != nil {
		return &Error{Kind: ErrLLMNotRunning, Dir: dir, Err: err}
	}
	return nil
}

func (p *Pipeline) processFile(ctx context.Context, dir, name string, prompter *DecisionPrompter, applier *Applier) (Outcome, error) {
	candidate := document.NewCandidateFile(filepath.Join(dir, name))
	outcome := Outcome{Original: name}

	text, err := p.cfg.TextExtractor.Extract(ctx, candidate.Path)
	if err != nil {
		p.logger.Warn("Failed to extract text", "file", name, "extractor", p.cfg.TextExtractor.Name(), "error", err)
		text = ""
	}
	candidate.Text = text
	if text == "" {
		fmt.Fprintf(p.out, "Skipping %s: no text content\n", name)
		outcome.Action = OutcomeNoText
		return outcome, nil
	}

	result := p.cfg.Fields.Extract(ctx, text)
	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("extracting fields from %s: %w", name, err)
	}
	if result.OK {
		candidate.Fields = &result.Fields
		candidate.Suggested = document.SuggestName(result.Fields)
		outcome.Fields = result.Fields
	} else {
		outcome.ExtractionFailed = true
	}

	decision, err := prompter.Decide(name, candidate.Suggested)
	if err != nil {
		return outcome, err
	}
	candidate.Decision = &decision

	action, err := applier.Apply(name, decision)
	if err != nil {
		return outcome, err
	}
	outcome.Action = action
	if action == OutcomeRenamed {
		outcome.Renamed = decision.Filename
		fmt.Fprintf(p.out, "Renamed to %s\n", decision.Filename)
	}
	return outcome, nil
}

func (p *Pipeline) record(summary *Summary, outcome Outcome) {
	if p.cfg.Journal == nil {
		return
	}
	record := &RenameRecord{
		ID:        p.idGenerator.Generate(),
		RunID:     summary.RunID,
		Dir:       summary.Dir,
		Original:  outcome.Original,
		Renamed:   outcome.Renamed,
		Fields:    outcome.Fields,
		CreatedAt: p.timeSource.Now(),
	}
	if err := p.cfg.Journal.SaveRecord(record); err != nil {
		p.logger.Warn("Failed to write journal", "original", outcome.Original, "error", err)
	}
}
