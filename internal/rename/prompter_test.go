package rename

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/infews/parkive/internal/document"
	"github.com/infews/parkive/internal/prompt"
)

var _ = Describe("DecisionPrompter", func() {
	var (
		text      *mockTextPrompt
		out       *bytes.Buffer
		suggested string
		decision  document.Decision
		err       error
	)

	BeforeEach(func() {
		text = &mockTextPrompt{}
		out = &bytes.Buffer{}
		suggested = "2026.01.31.Visa.Costco.9876.pdf"
	})

	JustBeforeEach(func() {
		decision, err = NewDecisionPrompter(text, out).Decide("scan.pdf", suggested)
	})

	When("the operator accepts the suggestion", func() {
		BeforeEach(func() {
			text.answers = []string{"2026.01.31.Visa.Costco.9876.pdf"}
		})

		It("returns a rename decision", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(decision).To(Equal(document.Rename("2026.01.31.Visa.Costco.9876.pdf")))
		})

		It("shows the original and the suggestion", func() {
			Expect(out.String()).To(ContainSubstring("Original: scan.pdf"))
			Expect(out.String()).To(ContainSubstring("Suggested: 2026.01.31.Visa.Costco.9876.pdf"))
		})

		It("offers the suggestion as the editable value", func() {
			Expect(text.values).To(Equal([]string{"2026.01.31.Visa.Costco.9876.pdf"}))
		})
	})

	When("the operator clears the value", func() {
		BeforeEach(func() {
			text.answers = []string{""}
		})

		It("skips the file", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(decision).To(Equal(document.SkipDecision()))
		})
	})

	When("there is no suggestion", func() {
		BeforeEach(func() {
			suggested = ""
			text.answers = []string{"2025.03.01.Chase.pdf"}
		})

		It("says so and starts from an empty value", func() {
			Expect(out.String()).To(ContainSubstring("Could not extract fields automatically."))
			Expect(text.values).To(Equal([]string{""}))
			Expect(decision.Filename).To(Equal("2025.03.01.Chase.pdf"))
		})
	})

	When("the operator enters invalid names first", func() {
		BeforeEach(func() {
			suggested = "UNKNOWN.Unknown.Corp.pdf"
			text.answers = []string{"UNKNOWN.Unknown.Corp.pdf", "2025.1.1.Unknown.pdf", "2025.01.01/x.pdf", "2025.01.01.Unknown.Corp.pdf"}
		})

		It("keeps asking until the name is valid", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(decision).To(Equal(document.Rename("2025.01.01.Unknown.Corp.pdf")))
		})

		It("pre-fills the rejected value", func() {
			Expect(text.values).To(Equal([]string{
				"UNKNOWN.Unknown.Corp.pdf",
				"UNKNOWN.Unknown.Corp.pdf",
				"2025.1.1.Unknown.pdf",
				"2025.01.01/x.pdf",
			}))
		})

		It("explains each rejection", func() {
			Expect(out.String()).To(ContainSubstring("Error: Filename must start with YYYY.MM.DD format"))
			Expect(out.String()).To(ContainSubstring("Error: Filename must not contain a directory"))
		})
	})

	When("the prompt is aborted", func() {
		BeforeEach(func() {
			text.err = prompt.ErrAborted
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(prompt.ErrAborted))
		})
	})
})
