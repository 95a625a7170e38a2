package textextract

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("linked backends", func() {
	var logger *slog.Logger

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	for _, backend := range []struct {
		name string
		make func(*slog.Logger) Extractor
	}{
		{BackendFitz, func(l *slog.Logger) Extractor { return NewFitz(l) }},
		{BackendPDF, func(l *slog.Logger) Extractor { return NewPDF(l) }},
	} {
		Describe(backend.name, func() {
			var (
				extractor Extractor
				path      string
				text      string
				err       error
			)

			BeforeEach(func() {
				extractor = backend.make(logger)
			})

			JustBeforeEach(func() {
				text, err = extractor.Extract(context.Background(), path)
			})

			When("the PDF has a text layer", func() {
				BeforeEach(func() {
					path = filepath.Join("testdata", "statement.pdf")
				})

				It("returns the page text", func() {
					Expect(err).NotTo(HaveOccurred())
					Expect(text).To(ContainSubstring("Closing Date 02/17/25"))
					Expect(text).To(ContainSubstring("Costco Anywhere Visa"))
				})
			})

			When("the PDF is a scanned image", func() {
				BeforeEach(func() {
					path = filepath.Join("testdata", "scanned.pdf")
				})

				It("returns no text", func() {
					Expect(err).NotTo(HaveOccurred())
					Expect(text).To(BeEmpty())
				})
			})

			When("the file does not exist", func() {
				BeforeEach(func() {
					path = filepath.Join("testdata", "missing.pdf")
				})

				It("returns an error", func() {
					Expect(err).To(MatchError(ContainSubstring("opening PDF")))
				})
			})

			It("checks without external tools", func() {
				Expect(extractor.Check()).To(Succeed())
			})
		})
	}
})
