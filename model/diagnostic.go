package model

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityFatal diagnostics abort processing of the file that produced
	// them. Everything parsed before the failure is still reported.
	SeverityFatal Severity = iota
	// SeverityError diagnostics mark the model as invalid but do not stop
	// parsing.
	SeverityError
	// SeverityWarning diagnostics flag suspicious but acceptable input.
	SeverityWarning
	// SeverityNote diagnostics carry advisory information.
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// SourceLocation is a 1-based position in a source file.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is a problem found while loading a model.
type Diagnostic struct {
	Severity Severity
	// Code is a stable machine-readable identifier, e.g. "duplicate-member".
	Code     string
	Message  string
	Location SourceLocation
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Location, d.Severity, d.Message, d.Code)
}

// IsError reports whether the diagnostic has error severity or worse.
func (d Diagnostic) IsError() bool {
	return d.Severity <= SeverityError
}
