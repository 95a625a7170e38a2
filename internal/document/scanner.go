package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanResult holds the PDFs found in a directory
type ScanResult struct {
	// PDFs is every PDF in the directory, conforming or not
	PDFs []string
	// Candidates is the subset of PDFs whose names do not conform yet
	Candidates []string
}

// Scan lists the PDF files directly inside dir (the extension is matched
// case-insensitively) and picks out the ones that still need a name.
// Paths are returned sorted by filename.
func Scan(dir string) (*ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	result := &ScanResult{}
	for _, entry := range entries {
		if !isPDF(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path) // follows symlinks
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		result.PDFs = append(result.PDFs, path)
		if !IsConforming(entry.Name()) {
			result.Candidates = append(result.Candidates, path)
		}
	}

	sort.Strings(result.PDFs)
	sort.Strings(result.Candidates)

	return result, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}
