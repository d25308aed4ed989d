package wasm

import (
	"errors"
	"io"

	"github.com/wippyai/sc-scan/wasm/internal/binary"
)

// Framing errors returned by Parser.Next.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidMagic    = errors.New("invalid wasm magic number")
	ErrUnknownLayer    = errors.New("unknown binary layer")
	ErrSectionTooLarge = errors.New("section size exceeds remaining input")
	ErrUnexpectedEOF   = io.ErrUnexpectedEOF
)

// Entry errors yielded by section entry iterators.
var (
	ErrUnknownKind         = errors.New("unknown external kind")
	ErrInvalidLimits       = errors.New("invalid limits")
	ErrInvalidLimitsFlags  = errors.New("invalid limits flags")
	ErrInvalidMutability   = errors.New("invalid global mutability")
	ErrInvalidTagAttribute = errors.New("invalid tag attribute")
	ErrSectionSizeMismatch = errors.New("unexpected data at the end of the section")
)

// Errors surfaced from the binary reader.
var (
	ErrOverflow    = binary.ErrOverflow
	ErrInvalidUTF8 = binary.ErrInvalidUTF8
)

// ParseError carries the section and absolute offset of a decoding failure.
type ParseError = binary.ParseError

// desynced reports whether err leaves the cursor at an unknown position.
// Truncated or overlong integers, and limits flags of unknown layout, mean
// the remaining bytes of a section can no longer be split into entries.
func desynced(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, ErrOverflow) ||
		errors.Is(err, ErrInvalidLimitsFlags)
}
