package wasm

import "fmt"

// Payload is one event produced by Parser. The concrete types are
// VersionPayload, ImportSectionPayload, ExportSectionPayload,
// CustomSectionPayload, SectionPayload and EndPayload.
type Payload interface {
	// Span returns the byte range of the input the payload covers.
	Span() Range
	payload()
}

// VersionPayload is produced once, from the 8-byte header.
type VersionPayload struct {
	Range    Range
	Num      uint16
	Encoding Encoding
}

// ImportSectionPayload wraps a core module import section.
type ImportSectionPayload struct {
	*ImportSectionReader
	Range Range
}

// ExportSectionPayload wraps a core module export section.
type ExportSectionPayload struct {
	*ExportSectionReader
	Range Range
}

// CustomSectionPayload is a named custom section of a module or component.
type CustomSectionPayload struct {
	Name  string
	Data  []byte
	Range Range
}

// SectionPayload is any other section. Its contents are left undecoded.
type SectionPayload struct {
	Data     []byte
	Range    Range
	ID       byte
	Encoding Encoding
}

// EndPayload marks the clean end of the input.
type EndPayload struct {
	Offset int
}

func (p VersionPayload) Span() Range       { return p.Range }
func (p ImportSectionPayload) Span() Range { return p.Range }
func (p ExportSectionPayload) Span() Range { return p.Range }
func (p CustomSectionPayload) Span() Range { return p.Range }
func (p SectionPayload) Span() Range       { return p.Range }
func (p EndPayload) Span() Range           { return Range{Start: p.Offset, End: p.Offset} }

func (VersionPayload) payload()       {}
func (ImportSectionPayload) payload() {}
func (ExportSectionPayload) payload() {}
func (CustomSectionPayload) payload() {}
func (SectionPayload) payload()       {}
func (EndPayload) payload()           {}

// Name returns a readable section name for logs.
func (p SectionPayload) Name() string {
	return SectionName(p.Encoding, p.ID)
}

// SectionName names section id within the given encoding.
func SectionName(enc Encoding, id byte) string {
	if id == SectionCustom {
		return "custom"
	}
	if enc == EncodingComponent {
		switch id {
		case ComponentSectionCoreModule:
			return "core module"
		case ComponentSectionCoreInstance:
			return "core instance"
		case ComponentSectionCoreType:
			return "core type"
		case ComponentSectionComponent:
			return "component"
		case ComponentSectionInstance:
			return "instance"
		case ComponentSectionAlias:
			return "alias"
		case ComponentSectionType:
			return "type"
		case ComponentSectionCanon:
			return "canon"
		case ComponentSectionStart:
			return "start"
		case ComponentSectionImport:
			return "import"
		case ComponentSectionExport:
			return "export"
		case ComponentSectionValue:
			return "value"
		}
		return fmt.Sprintf("unknown(%d)", id)
	}
	switch id {
	case SectionType:
		return "type"
	case SectionImport:
		return "import"
	case SectionFunction:
		return "function"
	case SectionTable:
		return "table"
	case SectionMemory:
		return "memory"
	case SectionGlobal:
		return "global"
	case SectionExport:
		return "export"
	case SectionStart:
		return "start"
	case SectionElement:
		return "element"
	case SectionCode:
		return "code"
	case SectionData:
		return "data"
	case SectionDataCount:
		return "data count"
	case SectionTag:
		return "tag"
	}
	return fmt.Sprintf("unknown(%d)", id)
}
