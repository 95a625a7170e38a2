package rename

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/llm"
	"github.com/infews/parkive/internal/prompt"
	"github.com/infews/parkive/internal/textextract"
)

var _ = Describe("Pipeline", func() {
	var (
		tmpDir        string
		dir           string
		textExtractor *mockTextExtractor
		generator     *mockGenerator
		fields        *mockFieldExtractor
		text          *mockTextPrompt
		confirm       *mockConfirmPrompt
		journal       *mockJournal
		out           *bytes.Buffer
		verbose       bool
		ctx           context.Context
		now           time.Time
		summary       *Summary
		err           error
	)

	writePDF := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	readFile := func(name string) string {
		data, readErr := os.ReadFile(filepath.Join(tmpDir, name))
		Expect(readErr).NotTo(HaveOccurred())
		return string(data)
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dir = tmpDir
		textExtractor = &mockTextExtractor{texts: map[string]string{}, errs: map[string]error{}}
		generator = &mockGenerator{}
		fields = &mockFieldExtractor{fields: map[string]document.Fields{}}
		text = &mockTextPrompt{}
		confirm = &mockConfirmPrompt{}
		journal = &mockJournal{}
		out = &bytes.Buffer{}
		verbose = false
		ctx = context.Background()
		now = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	})

	JustBeforeEach(func() {
		pipeline := NewPipelineWithDeps(Config{
			TextExtractor: textExtractor,
			Generator:     generator,
			Fields:        fields,
			TextPrompt:    text,
			ConfirmPrompt: confirm,
			Journal:       journal,
			Out:           out,
			Verbose:       verbose,
		}, &sequentialIDs{prefix: "id"}, &fixedTime{t: now})
		summary, err = pipeline.Run(ctx, dir)
	})

	Describe("preflight", func() {
		BeforeEach(func() {
			writePDF("scan.pdf", "scan")
		})

		When("the directory does not exist", func() {
			BeforeEach(func() {
				dir = filepath.Join(tmpDir, "missing")
			})

			It("returns ErrNoSourceDirectory", func() {
				Expect(errors.Is(err, ErrNoSourceDirectory)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(dir))
				Expect(summary).To(BeNil())
			})
		})

		When("the directory is a file", func() {
			BeforeEach(func() {
				dir = filepath.Join(tmpDir, "scan.pdf")
			})

			It("returns ErrNoSourceDirectory", func() {
				Expect(errors.Is(err, ErrNoSourceDirectory)).To(BeTrue())
			})
		})

		When("the text extractor is missing", func() {
			BeforeEach(func() {
				textExtractor.checkErr = textextract.ErrNotInstalled
			})

			It("returns ErrTextExtractorNotInstalled with the cause", func() {
				Expect(errors.Is(err, ErrTextExtractorNotInstalled)).To(BeTrue())
				Expect(errors.Is(err, textextract.ErrNotInstalled)).To(BeTrue())
				Expect(textExtractor.paths).To(BeEmpty())
			})
		})

		When("the llm is not installed", func() {
			BeforeEach(func() {
				generator.installedErr = llm.ErrNotInstalled
			})

			It("returns ErrLLMNotInstalled", func() {
				Expect(errors.Is(err, ErrLLMNotInstalled)).To(BeTrue())
				Expect(errors.Is(err, ErrLLMNotRunning)).To(BeFalse())
			})
		})

		When("the llm is not running", func() {
			BeforeEach(func() {
				generator.pingErr = llm.ErrNotRunning
			})

			It("returns ErrLLMNotRunning before touching any file", func() {
				Expect(errors.Is(err, ErrLLMNotRunning)).To(BeTrue())
				Expect(textExtractor.paths).To(BeEmpty())
				Expect(readFile("scan.pdf")).To(Equal("scan"))
			})
		})
	})

	When("the directory has no PDFs", func() {
		BeforeEach(func() {
			writePDF("notes.txt", "notes")
		})

		It("returns ErrNoPDFsFound naming the directory", func() {
			Expect(errors.Is(err, ErrNoPDFsFound)).To(BeTrue())
			Expect(err).To(MatchError("no PDFs found in " + tmpDir))
		})
	})

	When("every PDF is already named", func() {
		BeforeEach(func() {
			writePDF("2026.01.01.Already.Named.pdf", "named")
		})

		It("returns ErrAllFilesConforming", func() {
			Expect(errors.Is(err, ErrAllFilesConforming)).To(BeTrue())
			Expect(errors.Is(err, ErrNoPDFsFound)).To(BeFalse())
		})
	})

	When("files need names", func() {
		var doc1, doc2 string

		BeforeEach(func() {
			doc1 = writePDF("doc1.pdf", "one")
			doc2 = writePDF("doc2.PDF", "two")
			writePDF("2026.01.01.Already.Named.pdf", "named")

			textExtractor.texts[doc1] = "Costco statement"
			textExtractor.texts[doc2] = "Chase statement"
			fields.fields["Costco statement"] = document.Fields{Date: "2026.01.31", CreditCard: "Visa", Vendor: "Costco", AccountNumber: "9876"}
			fields.fields["Chase statement"] = document.Fields{Date: "2026.02.15", Vendor: "Chase"}
			text.answers = []string{"2026.01.31.Visa.Costco.9876.pdf", "2026.02.15.Chase.pdf"}
		})

		It("processes the candidates in name order", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(textExtractor.paths).To(Equal([]string{doc1, doc2}))
		})

		It("suggests names from the fields", func() {
			Expect(text.values).To(Equal([]string{"2026.01.31.Visa.Costco.9876.pdf", "2026.02.15.Chase.pdf"}))
		})

		It("renames the files", func() {
			Expect(readFile("2026.01.31.Visa.Costco.9876.pdf")).To(Equal("one"))
			Expect(readFile("2026.02.15.Chase.pdf")).To(Equal("two"))
			Expect(readFile("2026.01.01.Already.Named.pdf")).To(Equal("named"))
		})

		It("summarizes the run", func() {
			Expect(summary.RunID).To(Equal("id-1"))
			Expect(summary.Dir).To(Equal(tmpDir))
			Expect(summary.StartedAt).To(Equal(now))
			Expect(summary.FinishedAt).To(Equal(now))
			Expect(summary.Count(OutcomeRenamed)).To(Equal(2))
			Expect(summary.Outcomes[0]).To(Equal(Outcome{
				Original: "doc1.pdf",
				Renamed:  "2026.01.31.Visa.Costco.9876.pdf",
				Action:   OutcomeRenamed,
				Fields:   document.Fields{Date: "2026.01.31", CreditCard: "Visa", Vendor: "Costco", AccountNumber: "9876"},
			}))
		})

		It("journals each rename", func() {
			Expect(journal.records).To(HaveLen(2))
			Expect(journal.records[0].ID).To(Equal("id-2"))
			Expect(journal.records[0].RunID).To(Equal("id-1"))
			Expect(journal.records[0].Original).To(Equal("doc1.pdf"))
			Expect(journal.records[1].Renamed).To(Equal("2026.02.15.Chase.pdf"))
		})

		It("does not list files unless verbose", func() {
			Expect(out.String()).NotTo(ContainSubstring("Files to process:"))
		})

		When("verbose", func() {
			BeforeEach(func() {
				verbose = true
			})

			It("lists only the files that need names", func() {
				Expect(out.String()).To(ContainSubstring("Files to process:\n  doc1.pdf\n  doc2.PDF\n"))
				Expect(out.String()).NotTo(ContainSubstring("  2026.01.01.Already.Named.pdf"))
			})
		})

		When("a document has no text", func() {
			BeforeEach(func() {
				textExtractor.texts[doc1] = ""
				text.answers = []string{"2026.02.15.Chase.pdf"}
			})

			It("skips it and carries on", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(out.String()).To(ContainSubstring("Skipping doc1.pdf: no text content"))
				Expect(summary.Outcomes[0].Action).To(Equal(OutcomeNoText))
				Expect(summary.Outcomes[1].Action).To(Equal(OutcomeRenamed))
				Expect(readFile("doc1.pdf")).To(Equal("one"))
				Expect(fields.texts).To(Equal([]string{"Chase statement"}))
			})
		})

		When("text extraction fails", func() {
			BeforeEach(func() {
				textExtractor.errs[doc1] = errors.New("pdftotext exited 1")
				text.answers = []string{"2026.02.15.Chase.pdf"}
			})

			It("treats the file as having no text", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Outcomes[0].Action).To(Equal(OutcomeNoText))
				Expect(summary.Count(OutcomeRenamed)).To(Equal(1))
			})
		})

		When("field extraction fails", func() {
			BeforeEach(func() {
				delete(fields.fields, "Costco statement")
				text.answers = []string{"2026.01.31.Costco.pdf", "2026.02.15.Chase.pdf"}
			})

			It("prompts without a suggestion", func() {
				Expect(out.String()).To(ContainSubstring("Could not extract fields automatically."))
				Expect(text.values[0]).To(BeEmpty())
				Expect(summary.Outcomes[0].ExtractionFailed).To(BeTrue())
				Expect(readFile("2026.01.31.Costco.pdf")).To(Equal("one"))
			})
		})

		When("the operator skips a file", func() {
			BeforeEach(func() {
				text.answers = []string{"", "2026.02.15.Chase.pdf"}
			})

			It("leaves it alone", func() {
				Expect(readFile("doc1.pdf")).To(Equal("one"))
				Expect(summary.Outcomes[0].Action).To(Equal(OutcomeSkipped))
				Expect(journal.records).To(HaveLen(1))
			})
		})

		When("the target exists and the operator declines", func() {
			BeforeEach(func() {
				writePDF("2026.01.31.Visa.Costco.9876.pdf", "earlier")
				confirm.answer = false
			})

			It("leaves both files unchanged", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(readFile("doc1.pdf")).To(Equal("one"))
				Expect(readFile("2026.01.31.Visa.Costco.9876.pdf")).To(Equal("earlier"))
				Expect(summary.Outcomes[0].Action).To(Equal(OutcomeDeclinedOverwrite))
			})
		})

		When("the journal cannot be written", func() {
			BeforeEach(func() {
				journal.saveErr = errors.New("disk full")
			})

			It("still renames", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Count(OutcomeRenamed)).To(Equal(2))
			})
		})

		When("the operator aborts", func() {
			BeforeEach(func() {
				text.err = prompt.ErrAborted
			})

			It("stops with the abort and leaves the files", func() {
				Expect(errors.Is(err, prompt.ErrAborted)).To(BeTrue())
				Expect(summary).NotTo(BeNil())
				Expect(summary.Outcomes).To(BeEmpty())
				Expect(readFile("doc1.pdf")).To(Equal("one"))
				Expect(readFile("doc2.PDF")).To(Equal("two"))
			})
		})

		When("the context is cancelled", func() {
			BeforeEach(func() {
				var cancel context.CancelFunc
				ctx, cancel = context.WithCancel(context.Background())
				cancel()
			})

			It("processes nothing", func() {
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())
				Expect(textExtractor.paths).To(BeEmpty())
				Expect(readFile("doc1.pdf")).To(Equal("one"))
			})
		})

		When("the context is cancelled while fields are being extracted", func() {
			BeforeEach(func() {
				ctx, fields.cancel = context.WithCancel(context.Background())
				text.answers = []string{"2026.01.31.Manual.pdf", "2026.02.15.Chase.pdf"}
			})

			It("stops without prompting", func() {
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())
				Expect(fields.texts).To(HaveLen(1))
				Expect(text.values).To(BeEmpty())
				Expect(summary.Outcomes).To(BeEmpty())
				Expect(readFile("doc1.pdf")).To(Equal("one"))
				Expect(readFile("doc2.PDF")).To(Equal("two"))
				Expect(journal.records).To(BeEmpty())
			})
		})
	})
})
