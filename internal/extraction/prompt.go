package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("prompt").Parse(`You are a document field extractor. Extract fields from the document below and return JSON.

IMPORTANT DATE FORMAT RULE:
The date field MUST use format YYYY.MM.DD (4-digit year DOT 2-digit month DOT 2-digit day).
If document shows "02/17/25" or "February 17, 2025", or "February 1-17, 2025", convert to "2025.02.17".
If document shows "Closing Date 02/17/25", the year is 2025, so output "2025.02.17".
Prefer the statement closing date or document date. Never use today's date.

Fields to extract:
- date: Statement/closing date in YYYY.MM.DD format (REQUIRED)
- credit_card: Card type like "Visa", "American Express" (if applicable)
- vendor: Company name like "Fidelity", "E*Trade", "Delta Skymiles"
- account_number: Account number, whitespace removed, if present
- invoice_number: Invoice number, whitespace removed, if present

Use empty string "" for fields not found. Return ONLY valid JSON, no other text.

Examples:
{{range $i, $ex := .Examples}}{{if $i}}
{{end}}Document: {{$ex.Name}}
{{$ex.Document}}
Output: {{$ex.Output}}
{{end}}
Document to Extract from:
---
{{.Text}}
---
`))

type promptExample struct {
	Name     string
	Document string
	Output   string
}

// BuildPrompt renders the extraction prompt for a document
func BuildPrompt(panel *ExamplePanel, text string) (string, error) {
	examples := make([]promptExample, 0, panel.Len())
	for _, ex := range panel.Examples() {
		output, err := json.Marshal(ex.Fields())
		if err != nil {
			return "", fmt.Errorf("marshaling example %s: %w", ex.Name, err)
		}
		examples = append(examples, promptExample{
			Name:     ex.Name,
			Document: strings.TrimSpace(ex.Document),
			Output:   string(output),
		})
	}

	var b strings.Builder
	err := promptTemplate.Execute(&b, struct {
		Examples []promptExample
		Text     string
	}{examples, text})
	if err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return b.String(), nil
}
