package extraction

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/infews/parkive/internal/document"
)

//go:embed examples.yaml
var defaultExamplesYAML []byte

// Example pairs a document snippet with the fields the model should return for it
type Example struct {
	Name     string        `yaml:"name"`
	Document string        `yaml:"document"`
	Output   exampleOutput `yaml:"output"`
}

type exampleOutput struct {
	Date          string `yaml:"date"`
	CreditCard    string `yaml:"credit_card"`
	Vendor        string `yaml:"vendor"`
	AccountNumber string `yaml:"account_number"`
	InvoiceNumber string `yaml:"invoice_number"`
}

// Fields returns the example's expected output
func (e Example) Fields() document.Fields {
	return document.Fields{
		Date:          e.Output.Date,
		CreditCard:    e.Output.CreditCard,
		Vendor:        e.Output.Vendor,
		AccountNumber: e.Output.AccountNumber,
		InvoiceNumber: e.Output.InvoiceNumber,
	}
}

// ExamplePanel is the fixed set of few-shot examples sent with every prompt.
// It is loaded once at startup and never modified.
type ExamplePanel struct {
	examples []Example
}

// Examples returns a copy of the panel's examples
func (p *ExamplePanel) Examples() []Example {
	out := make([]Example, len(p.examples))
	copy(out, p.examples)
	return out
}

// Len returns the number of examples
func (p *ExamplePanel) Len() int {
	return len(p.examples)
}

// DefaultExamples returns the built-in example panel
func DefaultExamples() (*ExamplePanel, error) {
	return ParseExamples(defaultExamplesYAML)
}

// LoadExamples reads an example panel from a YAML file
func LoadExamples(path string) (*ExamplePanel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading examples file: %w", err)
	}
	return ParseExamples(data)
}

// ParseExamples parses an example panel from YAML
func ParseExamples(data []byte) (*ExamplePanel, error) {
	var examples []Example
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parsing examples: %w", err)
	}
	for i, ex := range examples {
		if ex.Name == "" {
			return nil, fmt.Errorf("example %d has no name", i+1)
		}
		if ex.Document == "" {
			return nil, fmt.Errorf("example %q has no document text", ex.Name)
		}
	}
	return &ExamplePanel{examples: examples}, nil
}
