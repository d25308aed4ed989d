package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHeader    Phase = "header"    // magic, version and layer
	PhaseSection   Phase = "section"   // section framing
	PhaseEntry     Phase = "entry"     // a single import/export entry
	PhaseSerialize Phase = "serialize" // record wire format
	PhaseConfig    Phase = "config"    // configuration loading
	PhaseInput     Phase = "input"     // reading files or stdin
	PhaseVerify    Phase = "verify"    // cross-check against a compiler
)

// Kind categorizes the error
type Kind string

const (
	KindEmptyInput      Kind = "empty_input"
	KindInvalidMagic    Kind = "invalid_magic"
	KindUnknownEncoding Kind = "unknown_encoding"
	KindTruncated       Kind = "truncated"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindInvalidData     Kind = "invalid_data"
	KindOverflow        Kind = "overflow"
	KindInvalidUTF8     Kind = "invalid_utf8"
	KindUnsupported     Kind = "unsupported"
	KindMismatch        Kind = "mismatch"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
)

// Error is the structured error type used throughout the scanner
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Section string
	Detail  string
	Path    []string
	// Offset is the absolute byte offset in the scanned input. Only
	// meaningful when Section is set.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Section sets the section name and byte offset
func (b *Builder) Section(name string, offset int) *Builder {
	b.err.Section = name
	b.err.Offset = offset
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// EmptyInput creates an error for a zero-length input
func EmptyInput() *Error {
	return &Error{
		Phase:   PhaseHeader,
		Kind:    KindEmptyInput,
		Section: "header",
		Detail:  "no bytes to scan",
	}
}

// InvalidMagic creates an error for input that does not start with "\0asm"
func InvalidMagic(prefix []byte) *Error {
	preview := prefix
	if len(preview) > 4 {
		preview = preview[:4]
	}
	return &Error{
		Phase:   PhaseHeader,
		Kind:    KindInvalidMagic,
		Section: "header",
		Detail:  fmt.Sprintf("got %x, want 0061736d", preview),
		Value:   preview,
	}
}

// UnknownEncoding creates an error for a header layer that is neither
// module nor component
func UnknownEncoding(offset int, cause error) *Error {
	return &Error{
		Phase:   PhaseHeader,
		Kind:    KindUnknownEncoding,
		Section: "header",
		Offset:  offset,
		Cause:   cause,
	}
}

// Truncated creates an error for input that ends inside a structure
func Truncated(phase Phase, section string, offset int, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTruncated,
		Section: section,
		Offset:  offset,
		Cause:   cause,
	}
}

// OutOfBounds creates an error for a size prefix exceeding the remaining input
func OutOfBounds(phase Phase, section string, offset int, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOutOfBounds,
		Section: section,
		Offset:  offset,
		Cause:   cause,
	}
}

// Overflow creates an error for an overlong or out-of-range integer
func Overflow(phase Phase, section string, offset int, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Section: section,
		Offset:  offset,
		Cause:   cause,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, section string, offset int, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidUTF8,
		Section: section,
		Offset:  offset,
		Cause:   cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MismatchEntry is one entity present on only one side of a comparison
type MismatchEntry struct {
	Namespace string // e.g., "import env" or "export"
	Name      string // e.g., "abort (Func)"
}

// MismatchError is returned when scanned records disagree with what a
// compiler reports for the same binary
type MismatchError struct {
	Missing    []MismatchEntry
	Unexpected []MismatchEntry
}

// NewMismatchError creates an error from lists of "namespace#name" keys
func NewMismatchError(missing, unexpected []string) *MismatchError {
	return &MismatchError{
		Missing:    parseEntries(missing),
		Unexpected: parseEntries(unexpected),
	}
}

func parseEntries(keys []string) []MismatchEntry {
	out := make([]MismatchEntry, 0, len(keys))
	for _, key := range keys {
		ns, name := parseKey(key)
		out = append(out, MismatchEntry{Namespace: ns, Name: name})
	}
	return out
}

func parseKey(key string) (namespace, name string) {
	ns, n, found := strings.Cut(key, "#")
	if found {
		return ns, n
	}
	return "", key
}

func (e *MismatchError) Error() string {
	if len(e.Missing) == 0 && len(e.Unexpected) == 0 {
		return "[verify] mismatch: no differences specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d missing, %d unexpected:", len(e.Missing), len(e.Unexpected))
	writeGroup(&b, "missing", e.Missing)
	writeGroup(&b, "unexpected", e.Unexpected)
	return strings.TrimSuffix(b.String(), "\n")
}

// writeGroup lists entries grouped by namespace, in first-seen order.
func writeGroup(b *strings.Builder, label string, entries []MismatchEntry) {
	if len(entries) == 0 {
		return
	}
	byNS := make(map[string][]string)
	var nsOrder []string
	for _, ent := range entries {
		if _, exists := byNS[ent.Namespace]; !exists {
			nsOrder = append(nsOrder, ent.Namespace)
		}
		byNS[ent.Namespace] = append(byNS[ent.Namespace], ent.Name)
	}

	b.WriteString("\n\n")
	b.WriteString(label)
	b.WriteByte(':')
	for _, ns := range nsOrder {
		b.WriteString("\n  ")
		if ns == "" {
			b.WriteString("(none)")
		} else {
			b.WriteString(ns)
		}
		b.WriteString(":\n")
		for _, name := range byNS[ns] {
			b.WriteString("    - ")
			b.WriteString(name)
			b.WriteByte('\n')
		}
	}
}

// Is reports whether target matches this error type
func (e *MismatchError) Is(target error) bool {
	if _, ok := target.(*MismatchError); ok {
		return true
	}
	t, ok := target.(*Error)
	return ok && t.Phase == PhaseVerify && t.Kind == KindMismatch
}
