package prompt

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Line", func() {
	var (
		input string
		out   *bytes.Buffer
		line  *Line
	)

	JustBeforeEach(func() {
		out = &bytes.Buffer{}
		line = NewLine(strings.NewReader(input), out)
	})

	Describe("Input", func() {
		var (
			value  string
			answer string
			err    error
		)

		BeforeEach(func() {
			value = "2025.02.17.Amex.pdf"
		})

		JustBeforeEach(func() {
			answer, err = line.Input("New filename", value)
		})

		When("the operator presses enter", func() {
			BeforeEach(func() {
				input = "\n"
			})

			It("keeps the current value", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(answer).To(Equal("2025.02.17.Amex.pdf"))
			})

			It("shows the current value", func() {
				Expect(out.String()).To(ContainSubstring("New filename [2025.02.17.Amex.pdf]"))
			})
		})

		When("the operator clears the value", func() {
			BeforeEach(func() {
				input = "-\n"
			})

			It("returns an empty answer", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(answer).To(BeEmpty())
			})
		})

		When("the operator types a new name", func() {
			BeforeEach(func() {
				input = "  2025.02.18.Amex.pdf  \n"
			})

			It("returns it trimmed", func() {
				Expect(answer).To(Equal("2025.02.18.Amex.pdf"))
			})
		})

		When("there is no starting value", func() {
			BeforeEach(func() {
				value = ""
				input = "\n"
			})

			It("returns an empty answer", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(answer).To(BeEmpty())
				Expect(out.String()).To(Equal("New filename: "))
			})
		})

		When("the last line has no newline", func() {
			BeforeEach(func() {
				input = "2025.01.01.Fidelity.pdf"
			})

			It("still reads it", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(answer).To(Equal("2025.01.01.Fidelity.pdf"))
			})
		})

		When("input ends", func() {
			BeforeEach(func() {
				input = ""
			})

			It("returns ErrAborted", func() {
				Expect(err).To(MatchError(ErrAborted))
			})
		})
	})

	Describe("Confirm", func() {
		DescribeTable("answers",
			func(in string, expected bool) {
				l := NewLine(strings.NewReader(in), &bytes.Buffer{})
				ok, err := l.Confirm("Overwrite?")
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(Equal(expected))
			},
			Entry("y", "y\n", true),
			Entry("YES", "YES\n", true),
			Entry("n", "n\n", false),
			Entry("default", "\n", false),
			Entry("anything else", "sure\n", false),
		)

		When("input ends", func() {
			BeforeEach(func() {
				input = ""
			})

			It("returns ErrAborted", func() {
				_, err := line.Confirm("Overwrite?")
				Expect(err).To(MatchError(ErrAborted))
			})
		})

		It("asks with a no default", func() {
			input = "n\n"
			l := NewLine(strings.NewReader(input), out)
			_, _ = l.Confirm("File exists. Overwrite?")
			Expect(out.String()).To(Equal("File exists. Overwrite? [y/N]: "))
		})
	})

	It("reads answers in order from one reader", func() {
		l := NewLine(strings.NewReader("2025.03.01.A.pdf\ny\n"), &bytes.Buffer{})
		name, err := l.Input("New filename", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("2025.03.01.A.pdf"))

		ok, err := l.Confirm("Overwrite?")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})
})
