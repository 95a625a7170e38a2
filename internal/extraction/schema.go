package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/infews/parkive/internal/document"
)

var fieldDescriptions = map[string]string{
	document.FieldDate: "Statement or document date in YYYY.MM.DD format. Convert dates like '02/17/25' to '2025.02.17' " +
		"and 'February 17, 2025' to '2025.02.17'. Use the statement closing date. Empty string if not found.",
	document.FieldCreditCard: "Credit card network or issuer: 'Visa', 'American Express', 'Master Card', 'Apple Card'. " +
		"This is the payment network, NOT the card product name. Empty string if not a credit card statement.",
	document.FieldVendor: "The brand or product name on the statement, such as 'Delta SkyMiles', 'Fidelity', 'E*Trade', " +
		"'Sals Landscaping'. For credit cards, this is the card product name, not the issuer. Empty string if not found.",
	document.FieldAccountNumber: "Primary account number, typically the shortest unique identifier. Omit trailing " +
		"sub-account suffixes like '-201'. Remove whitespace. Empty string if not found.",
	document.FieldInvoiceNumber: "Invoice number with whitespace removed. Empty string if not found.",
}

// FormatSchema returns the JSON schema of the fields object. It is sent to
// backends that can constrain their output to a schema.
func FormatSchema() map[string]any {
	props := make(map[string]any, len(document.FieldOrder))
	for _, name := range document.FieldOrder {
		props[name] = map[string]any{
			"type":        "string",
			"description": fieldDescriptions[name],
		}
	}

	return map[string]any{
		"type":        "object",
		"description": "Structured fields extracted from a financial document or invoice",
		"properties":  props,
		"required":    document.FieldOrder,
	}
}

// responseSchema is what we accept back: an object whose known fields are
// scalars. Booleans carry no usable value and become empty strings.
// Anything else is retried.
func responseSchema() map[string]any {
	props := make(map[string]any, len(document.FieldOrder))
	for _, name := range document.FieldOrder {
		props[name] = map[string]any{"type": []string{"string", "number", "boolean", "null"}}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("fields.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("fields.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

var validator = mustCompile(responseSchema())

func mustCompile(schemaMap map[string]any) *jsonschema.Schema {
	schema, err := compileSchema(schemaMap)
	if err != nil {
		panic(err)
	}
	return schema
}
