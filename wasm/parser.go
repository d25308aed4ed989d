package wasm

import (
	"fmt"
	"io"
	"iter"

	"github.com/wippyai/sc-scan/wasm/internal/binary"
)

type parserState uint8

const (
	stateHeader parserState = iota
	stateSections
	stateDone
)

// Parser walks a module or component one payload at a time. It validates
// the header and the framing of every top-level section, and hands section
// contents out as sub-slices of the input without copying them.
//
// Nested modules and components are reported as opaque sections.
// A Parser is not safe for concurrent use; create one per input.
type Parser struct {
	r        *binary.Reader
	encoding Encoding
	state    parserState
}

// NewParser creates a Parser positioned at offset 0 of data.
func NewParser(data []byte) *Parser {
	return &Parser{r: binary.NewReader(data, 0)}
}

// Encoding returns the encoding announced by the header. It is only
// meaningful after the VersionPayload has been returned.
func (p *Parser) Encoding() Encoding {
	return p.encoding
}

// Next returns the next payload. After EndPayload or any error every
// further call returns io.EOF.
func (p *Parser) Next() (Payload, error) {
	switch p.state {
	case stateHeader:
		return p.readHeader()
	case stateSections:
		if p.r.AtEnd() {
			p.state = stateDone
			return EndPayload{Offset: p.r.Position()}, nil
		}
		return p.readSection()
	default:
		return nil, io.EOF
	}
}

// Payloads returns an iterator over the remaining payloads. A framing error
// is yielded once, together with a nil payload, and ends the sequence.
func (p *Parser) Payloads() iter.Seq2[Payload, error] {
	return func(yield func(Payload, error) bool) {
		for {
			pl, err := p.Next()
			if err == io.EOF {
				return
			}
			if !yield(pl, err) || err != nil {
				return
			}
		}
	}
}

func (p *Parser) readHeader() (Payload, error) {
	p.state = stateDone
	start := p.r.Position()

	if p.r.AtEnd() {
		return nil, frameError("header", start, ErrEmptyInput)
	}

	magic, err := p.r.ReadU32LE()
	if err != nil {
		return nil, frameError("header", start, err)
	}
	if magic != Magic {
		return nil, frameError("header", start, ErrInvalidMagic)
	}

	version, err := p.r.ReadU16LE()
	if err != nil {
		return nil, p.r.WrapError("header", err)
	}
	layer, err := p.r.ReadU16LE()
	if err != nil {
		return nil, p.r.WrapError("header", err)
	}

	switch layer {
	case LayerModule:
		p.encoding = EncodingModule
	case LayerComponent:
		p.encoding = EncodingComponent
	default:
		return nil, frameError("header", start+6, fmt.Errorf("%w: 0x%04x", ErrUnknownLayer, layer))
	}

	p.state = stateSections
	return VersionPayload{
		Num:      version,
		Encoding: p.encoding,
		Range:    Range{Start: start, End: p.r.Position()},
	}, nil
}

func (p *Parser) readSection() (Payload, error) {
	start := p.r.Position()

	// The caller checked AtEnd, so the id byte is present.
	id, _ := p.r.ReadByte()

	size, err := p.r.ReadU32()
	if err != nil {
		p.state = stateDone
		return nil, p.r.WrapError("section size", err)
	}
	if int64(size) > int64(p.r.Len()) {
		p.state = stateDone
		return nil, frameError("section "+SectionName(p.encoding, id), start,
			fmt.Errorf("%w: %d bytes declared, %d available", ErrSectionTooLarge, size, p.r.Len()))
	}

	body, err := p.r.Sub(int(size))
	if err != nil {
		p.state = stateDone
		return nil, p.r.WrapError("section data", err)
	}
	rng := Range{Start: start, End: p.r.Position()}

	if id == SectionCustom {
		name, err := body.ReadName()
		if err != nil {
			p.state = stateDone
			return nil, body.WrapError("custom section name", err)
		}
		return CustomSectionPayload{Name: name, Data: body.Remaining(), Range: rng}, nil
	}

	if p.encoding == EncodingModule {
		switch id {
		case SectionImport:
			count, err := body.ReadU32()
			if err != nil {
				p.state = stateDone
				return nil, body.WrapError("import section count", err)
			}
			return ImportSectionPayload{
				ImportSectionReader: &ImportSectionReader{entries: newEntries(body, count)},
				Range:               rng,
			}, nil
		case SectionExport:
			count, err := body.ReadU32()
			if err != nil {
				p.state = stateDone
				return nil, body.WrapError("export section count", err)
			}
			return ExportSectionPayload{
				ExportSectionReader: &ExportSectionReader{entries: newEntries(body, count)},
				Range:               rng,
			}, nil
		}
	}

	return SectionPayload{ID: id, Encoding: p.encoding, Data: body.Remaining(), Range: rng}, nil
}

func frameError(section string, pos int, err error) error {
	return &ParseError{Section: section, Position: pos, Err: err}
}
