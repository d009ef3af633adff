package types

// Diagnostic codes emitted by the lexer, parser, and assembler phases.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer and parser diagnostic codes.
const (
	DiagSyntax           = "syntax"
	DiagInvalidEscape    = "invalid-escape"
	DiagInvalidNumber    = "invalid-number"
	DiagUnclosedString   = "unclosed-string"
	DiagDuplicateMember  = "duplicate-member"
	DiagNestingLimit     = "nesting-limit"
	DiagTraitNotAllowed  = "trait-not-allowed"
	DiagMissingNamespace = "missing-namespace"
)

// Assembler diagnostic codes.
const (
	DiagUnsupportedVersion = "unsupported-version"
	DiagDuplicateShape     = "duplicate-shape"
	DiagDuplicateTrait     = "duplicate-trait"
	DiagDuplicateUse       = "duplicate-use"
	DiagBadUseTarget       = "bad-use-target"
	DiagUnresolvedTrait    = "unresolved-trait"
	DiagUnresolvedShape    = "unresolved-shape"
	DiagMetadataConflict   = "metadata-conflict"
)

// DiagCodeInfo describes a diagnostic code and the phase that emits it.
type DiagCodeInfo struct {
	Code  string
	Phase string
}

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Lexer / parser
		{Code: DiagSyntax, Phase: "parser"},
		{Code: DiagInvalidEscape, Phase: "parser"},
		{Code: DiagInvalidNumber, Phase: "parser"},
		{Code: DiagUnclosedString, Phase: "parser"},
		{Code: DiagDuplicateMember, Phase: "parser"},
		{Code: DiagNestingLimit, Phase: "parser"},
		{Code: DiagTraitNotAllowed, Phase: "parser"},
		{Code: DiagMissingNamespace, Phase: "parser"},
		// Assembler
		{Code: DiagUnsupportedVersion, Phase: "assembler"},
		{Code: DiagDuplicateShape, Phase: "assembler"},
		{Code: DiagDuplicateTrait, Phase: "assembler"},
		{Code: DiagDuplicateUse, Phase: "assembler"},
		{Code: DiagBadUseTarget, Phase: "assembler"},
		{Code: DiagUnresolvedTrait, Phase: "assembler"},
		{Code: DiagUnresolvedShape, Phase: "assembler"},
		{Code: DiagMetadataConflict, Phase: "assembler"},
	}
}
