// Package diag defines the diagnostic model of the template compiler.
//
// # Purpose
//
//   - Describe the first problem found in a format template with enough
//     information to point at it: three byte offsets (selection begin, caret,
//     selection end) into the template text.
//   - Render that description as the classic three-line caret report followed
//     by fix-it suggestions indented to the caret column.
//   - Give tooling (the CLI, the vet analyzer) stable codes and a Bag to
//     collect results of many templates.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Code – compact numeric identifier (codes.go) with a stable ID such as
//     FMT1001 and a short title.
//   - Message – the human oriented text, e.g. "unexpected end of the format
//     string".
//   - Template – the template the offsets refer to.
//   - Begin/Caret/End – selection and caret offsets, Begin <= Caret <= End.
//   - Fixits – legal continuations at the caret; some carry an Edit that the
//     fix package can apply.
//   - Origin – optional location of the template outside the library API.
//
// There is no severity: a template either compiles or it does not, and parsing
// stops at the first diagnostic.
//
// # Rendering
//
// Render output is bounded by MaxRendered bytes. The message line and the
// caret line survive truncation; fix-its go first, then the template is
// windowed around the caret with "…" marking the cut ends.
//
// Formatting for terminals (colors) and JSON lives in internal/diagfmt.
package diag
