package types

// Severity constants matching model.Severity values.
const (
	SeverityFatal   = 0
	SeverityError   = 1
	SeverityWarning = 2
	SeverityNote    = 3
)

// SpanDiagnostic is a message from the lexer, parser, or assembler
// (internal use). It gets converted to model.Diagnostic during assembly
// with the file name and line/column info filled in.
type SpanDiagnostic struct {
	Severity int    // Uses model.Severity values (0=Fatal, 1=Error, ...)
	Code     string // Diagnostic code (e.g., "syntax", "duplicate-member")
	Span     Span
	Message  string
}

// IsFatal reports whether the diagnostic should abort the current file parse.
func (d SpanDiagnostic) IsFatal() bool {
	return d.Severity == SeverityFatal
}
