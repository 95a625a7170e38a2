package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/infews/parkive/internal/extraction"
	"github.com/infews/parkive/internal/llm"
	"github.com/infews/parkive/internal/prompt"
	"github.com/infews/parkive/internal/rename"
	"github.com/infews/parkive/internal/textextract"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad arguments
var errUsage = errors.New("usage error")

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" {
			fmt.Println(version)
			os.Exit(exitOK)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: loading .env: %v\n", err)
		os.Exit(exitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// a second interrupt kills the process
		<-ctx.Done()
		stop()
	}()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type renameFlags struct {
	verbose       *bool
	llmBackend    *string
	ollamaURL     *string
	model         *string
	numCtx        *int
	llmTimeout    *time.Duration
	geminiKey     *string
	openaiURL     *string
	openaiKey     *string
	textExtractor *string
	examples      *string
	journal       *string
	report        *string
	plain         *bool
}

func run(ctx context.Context, args []string, stdin *os.File, stdout, stderr io.Writer) int {
	rootFlags := ff.NewFlagSet("parkive")
	_ = rootFlags.StringLong("config", "", "Config file with one flag per line")
	root := &ff.Command{
		Name:      "parkive",
		Usage:     "parkive <SUBCOMMAND> [FLAGS]",
		ShortHelp: "file scanned statements and invoices under dated names",
		Flags:     rootFlags,
		Exec: func(ctx context.Context, args []string) error {
			return fmt.Errorf("%w: missing subcommand", ff.ErrHelp)
		},
	}

	fs := ff.NewFlagSet("rename").SetParent(rootFlags)
	flags := renameFlags{
		verbose:       fs.Bool('v', "verbose", "Show the files to process, model responses and retries"),
		llmBackend:    fs.StringLong("llm", "ollama", "Language model backend: 'ollama', 'gemini' or 'openai'"),
		ollamaURL:     fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL"),
		model:         fs.StringLong("model", "", "Model name (default qwen2.5:14b for ollama, gemini-2.5-flash for gemini)"),
		numCtx:        fs.IntLong("num-ctx", llm.DefaultNumCtx, "Context window requested from Ollama"),
		llmTimeout:    fs.DurationLong("llm-timeout", llm.DefaultTimeout, "Timeout for a single model request"),
		geminiKey:     fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)"),
		openaiURL:     fs.StringLong("openai-url", "http://localhost:8080/v1", "OpenAI-compatible API base URL"),
		openaiKey:     fs.StringLong("openai-key", "", "OpenAI-compatible API key (or set OPENAI_API_KEY env var)"),
		textExtractor: fs.StringLong("text-extractor", textextract.BackendPdftotext, "Text extractor: 'pdftotext', 'fitz' or 'pdf'"),
		examples:      fs.StringLong("examples", "", "YAML file of few-shot examples (default built in)"),
		journal:       fs.StringLong("journal", defaultJournalPath(), "Journal database path, empty to disable"),
		report:        fs.StringLong("report", "", "Write an XLSX report of the run to this path"),
		plain:         fs.BoolLong("plain", "Use line prompts even on a terminal"),
	}

	renameCmd := &ff.Command{
		Name:      "rename",
		Usage:     "parkive rename [FLAGS] DIR",
		ShortHelp: "rename the PDFs in DIR to YYYY.MM.DD.<fields>.pdf",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: rename takes exactly one directory", errUsage)
			}
			return runRename(ctx, flags, args[0], stdin, stdout)
		},
	}
	root.Subcommands = append(root.Subcommands, renameCmd)

	err := root.ParseAndRun(ctx, args,
		ff.WithEnvVarPrefix("PARKIVE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ff.ErrHelp):
		fmt.Fprintf(stderr, "%s\n", ffhelp.Command(root.GetSelected()))
		return exitUsage
	case errors.Is(err, errUsage), errors.Is(err, ff.ErrUnknownFlag), errors.Is(err, ff.ErrNoExec):
		fmt.Fprintf(stderr, "%s\n", ffhelp.Command(root.GetSelected()))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	case errors.Is(err, prompt.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "Interrupted.")
		return exitError
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

func runRename(ctx context.Context, flags renameFlags, dir string, stdin *os.File, stdout io.Writer) error {
	level := slog.LevelInfo
	if *flags.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	texts, err := textextract.New(*flags.textExtractor, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	generator, err := newGenerator(flags)
	if err != nil {
		return err
	}
	defer generator.Close()

	panel, err := loadExamples(*flags.examples)
	if err != nil {
		return err
	}

	var (
		journal rename.Journal
		cache   extraction.Cache
	)
	if *flags.journal != "" {
		slog.Debug("Opening journal", "path", *flags.journal)
		bolt, err := rename.NewBoltJournal(*flags.journal)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer bolt.Close()
		journal, cache = bolt, bolt
	}

	var prompts interface {
		prompt.TextPrompt
		prompt.ConfirmPrompt
	}
	if !*flags.plain && isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		prompts = prompt.NewTUI(stdin, stdout)
	} else {
		prompts = prompt.NewLine(stdin, stdout)
	}

	pipeline := rename.NewPipeline(rename.Config{
		TextExtractor: texts,
		Generator:     generator,
		Fields:        extraction.NewExtractor(generator, panel, cache, nil),
		TextPrompt:    prompts,
		ConfirmPrompt: prompts,
		Journal:       journal,
		Out:           stdout,
		Verbose:       *flags.verbose,
	})

	slog.Debug("Starting rename", "dir", dir, "llm", *flags.llmBackend, "text_extractor", texts.Name())
	summary, runErr := pipeline.Run(ctx, dir)
	if summary != nil {
		fmt.Fprintf(stdout, "\nRenamed %d, skipped %d, no text %d, kept existing %d\n",
			summary.Count(rename.OutcomeRenamed),
			summary.Count(rename.OutcomeSkipped),
			summary.Count(rename.OutcomeNoText),
			summary.Count(rename.OutcomeDeclinedOverwrite),
		)
		if *flags.report != "" {
			if err := rename.WriteReport(*flags.report, summary); err != nil {
				slog.Error("Failed to write report", "path", *flags.report, "error", err)
			} else {
				slog.Info("Report written", "path", *flags.report)
			}
		}
	}
	return runErr
}

func newGenerator(flags renameFlags) (llm.Generator, error) {
	options := llm.Options{
		Temperature: 0,
		NumCtx:      *flags.numCtx,
		Timeout:     *flags.llmTimeout,
	}

	switch *flags.llmBackend {
	case "ollama":
		options.Format = extraction.FormatSchema()
		slog.Debug("Initializing Ollama...", "url", *flags.ollamaURL, "model", *flags.model)
		generator, err := llm.NewOllama(*flags.ollamaURL, *flags.model, options)
		if err != nil {
			return nil, fmt.Errorf("initializing ollama: %w", err)
		}
		return generator, nil
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *flags.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		slog.Debug("Initializing Gemini...", "model", *flags.model)
		generator, err := llm.NewGemini(apiKey, *flags.model, options)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini: %w", err)
		}
		return generator, nil
	case "openai":
		apiKey := *flags.openaiKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		slog.Debug("Initializing OpenAI-compatible client...", "url", *flags.openaiURL, "model", *flags.model)
		generator, err := llm.NewOpenAI(*flags.openaiURL, apiKey, *flags.model, options)
		if err != nil {
			return nil, fmt.Errorf("initializing openai: %w", err)
		}
		return generator, nil
	}
	return nil, fmt.Errorf("%w: invalid llm backend %q (valid: ollama, gemini, openai)", errUsage, *flags.llmBackend)
}

func loadExamples(path string) (*extraction.ExamplePanel, error) {
	if path == "" {
		return extraction.DefaultExamples()
	}
	panel, err := extraction.LoadExamples(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded examples", "path", path, "count", panel.Len())
	return panel, nil
}

func defaultJournalPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "parkive", "journal.db")
}
