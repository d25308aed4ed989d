// Package errors provides structured error types for the scanner.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the section name and absolute byte offset of a decoding
// failure, an optional field path, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSection, errors.KindOutOfBounds).
//		Section("section import", 8).
//		Detail("size %d exceeds %d remaining bytes", 40, 12).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidMagic(data)
//	err := errors.Truncated(errors.PhaseSection, "section size", 9, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when phase and kind are equal.
package errors
