package document

// Field names, in the order they appear in a suggested filename
const (
	FieldDate          = "date"
	FieldCreditCard    = "credit_card"
	FieldVendor        = "vendor"
	FieldAccountNumber = "account_number"
	FieldInvoiceNumber = "invoice_number"
)

// FieldOrder is the order fields are joined into a filename
var FieldOrder = []string{FieldDate, FieldCreditCard, FieldVendor, FieldAccountNumber, FieldInvoiceNumber}

// Fields contains the identifying information extracted from a document.
// An empty string means the field was not found.
type Fields struct {
	Date          string `json:"date"` // YYYY.MM.DD when the model follows instructions
	CreditCard    string `json:"credit_card"`
	Vendor        string `json:"vendor"`
	AccountNumber string `json:"account_number"`
	InvoiceNumber string `json:"invoice_number"`
}

// Get returns the value of the named field, or "" for an unknown name
func (f Fields) Get(name string) string {
	switch name {
	case FieldDate:
		return f.Date
	case FieldCreditCard:
		return f.CreditCard
	case FieldVendor:
		return f.Vendor
	case FieldAccountNumber:
		return f.AccountNumber
	case FieldInvoiceNumber:
		return f.InvoiceNumber
	}
	return ""
}

// Set assigns the named field. It reports false for an unknown name.
func (f *Fields) Set(name, value string) bool {
	switch name {
	case FieldDate:
		f.Date = value
	case FieldCreditCard:
		f.CreditCard = value
	case FieldVendor:
		f.Vendor = value
	case FieldAccountNumber:
		f.AccountNumber = value
	case FieldInvoiceNumber:
		f.InvoiceNumber = value
	default:
		return false
	}
	return true
}

// Action is what the operator decided to do with a file
type Action string

const (
	ActionRename Action = "rename"
	ActionSkip   Action = "skip"
)

// Decision is the final outcome of prompting for a file.
// Filename is only set when Action is ActionRename.
type Decision struct {
	Action   Action `json:"action"`
	Filename string `json:"filename,omitempty"`
}

// Rename returns a decision to rename the file to filename
func Rename(filename string) Decision {
	return Decision{Action: ActionRename, Filename: filename}
}

// SkipDecision returns a decision to leave the file alone
func SkipDecision() Decision {
	return Decision{Action: ActionSkip}
}

// CandidateFile tracks a single PDF as it moves through the rename pipeline
type CandidateFile struct {
	Path      string
	Text      string
	Fields    *Fields // nil when extraction failed or has not run
	Suggested string  // empty when there is no suggestion
	Decision  *Decision
}

// NewCandidateFile creates a candidate for the file at path
func NewCandidateFile(path string) *CandidateFile {
	return &CandidateFile{Path: path}
}
