// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// Parsing never fails with a Go error: every malformed region of the input
// becomes a Diagnostic, and the parser keeps going. Producers emit through a
// Reporter (usually a BagReporter that appends to a bounded Bag); consumers
// decide whether any diagnostic is fatal for them.
//
// A Diagnostic carries:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric id with a stable string form (SYN2001, ...). Code.Kind
//     returns the coarse kind name used by external tooling
//     ("MissingField", "UnrecognizedInput").
//   - Message: short, actionable text.
//   - Primary: the span the diagnostic is about. Primary.Start is the byte
//     offset reported to external tools.
//   - Field: for MissingField, the name of the absent field.
//   - Notes and Fixes: optional secondary spans and suggested edits.
//
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
