package document

import (
	"regexp"
	"strings"
)

// Unknown is prepended to a suggested filename that lacks a valid leading date
const Unknown = "UNKNOWN"

// Extension is appended to every suggested filename
const Extension = ".pdf"

const separator = "."

var (
	datePattern       = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
	conformingPattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}\.`)
	unsafeChars       = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRuns    = regexp.MustCompile(`[\s\v\p{Z}]+`)
	separatorRuns     = regexp.MustCompile(`\.+`)
)

// SuggestName builds a filename from the extracted fields, e.g.
// 2026.01.31.Visa.Costco.9876.pdf. Filenames without a valid leading date
// start with UNKNOWN.
func SuggestName(fields Fields) string {
	parts := make([]string, 0, len(FieldOrder)+1)
	for _, name := range FieldOrder {
		value := fields.Get(name)
		if value == "" {
			continue
		}
		if clean := Sanitize(value); clean != "" {
			parts = append(parts, clean)
		}
	}

	if len(parts) == 0 || !IsDate(parts[0]) {
		parts = append([]string{Unknown}, parts...)
	}

	return strings.Join(parts, separator) + Extension
}

// Sanitize makes a field value safe to use as part of a filename.
// Whitespace becomes the separator, filesystem-unsafe characters are removed
// and repeated separators are collapsed.
func Sanitize(value string) string {
	s := strings.TrimSpace(value)
	s = whitespaceRuns.ReplaceAllString(s, separator)
	s = unsafeChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, separator)
	return strings.Trim(s, separator)
}

// IsDate reports whether s is exactly a YYYY.MM.DD date
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

// IsConforming reports whether a basename already follows the archive
// naming convention (YYYY.MM.DD followed by a separator)
func IsConforming(name string) bool {
	return conformingPattern.MatchString(name)
}
