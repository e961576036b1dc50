package analyst

import "fmt"

// FailureKind classifies a parse failure.
type FailureKind string

const (
	// MalformedOutput: the payload is not parseable JSON even after
	// fence-stripping and repair.
	MalformedOutput FailureKind = "malformed_output"
	// SchemaMismatch: the JSON parsed but lacks required top-level keys for
	// the task kind.
	SchemaMismatch FailureKind = "schema_mismatch"
)

// ParseError is the typed parse failure. Raw always preserves the original
// model text verbatim so a human can diagnose a prompt-template regression.
type ParseError struct {
	Kind   FailureKind `json:"kind"`
	Raw    string      `json:"raw"`
	Detail string      `json:"detail"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
