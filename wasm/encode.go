package wasm

import (
	"github.com/wippyai/sc-scan/wasm/internal/binary"
)

// Global is a global definition for the builder: its type and raw init expression.
type Global struct {
	Type GlobalType
	Init []byte
}

// FuncType is a function signature for the builder's type section.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// Builder assembles a binary section by section, in call order. It writes
// exactly what it is given and never validates, so it can produce both
// well-formed modules and deliberately broken ones.
type Builder struct {
	sections []builtSection
	version  uint16
	layer    uint16
}

type builtSection struct {
	body []byte
	id   byte
}

// NewModuleBuilder starts a core module (version 1).
func NewModuleBuilder() *Builder {
	return &Builder{version: Version, layer: LayerModule}
}

// NewComponentBuilder starts a component (version 0x0d, layer 1).
func NewComponentBuilder() *Builder {
	return &Builder{version: ComponentVersion, layer: LayerComponent}
}

// Header overrides the version and layer fields.
func (b *Builder) Header(version, layer uint16) *Builder {
	b.version = version
	b.layer = layer
	return b
}

// Section appends a section with a raw body.
func (b *Builder) Section(id byte, body []byte) *Builder {
	b.sections = append(b.sections, builtSection{id: id, body: body})
	return b
}

// Custom appends a named custom section.
func (b *Builder) Custom(name string, data []byte) *Builder {
	w := binary.NewWriter()
	w.WriteName(name)
	w.WriteBytes(data)
	return b.Section(SectionCustom, w.Bytes())
}

// Types appends a type section.
func (b *Builder) Types(types ...FuncType) *Builder {
	entries := make([][]byte, len(types))
	for i, ft := range types {
		w := binary.NewWriter()
		w.Byte(FuncTypeByte)
		writeValTypes(w, ft.Params)
		writeValTypes(w, ft.Results)
		entries[i] = w.Bytes()
	}
	return b.Section(SectionType, EncodeVec(entries...))
}

// Imports appends an import section.
func (b *Builder) Imports(imports ...Import) *Builder {
	entries := make([][]byte, len(imports))
	for i, imp := range imports {
		entries[i] = EncodeImport(imp)
	}
	return b.Section(SectionImport, EncodeVec(entries...))
}

// Functions appends a function section declaring one function per type index.
func (b *Builder) Functions(typeIdxs ...uint32) *Builder {
	entries := make([][]byte, len(typeIdxs))
	for i, idx := range typeIdxs {
		w := binary.NewWriter()
		w.WriteU32(idx)
		entries[i] = w.Bytes()
	}
	return b.Section(SectionFunction, EncodeVec(entries...))
}

// Memories appends a memory section.
func (b *Builder) Memories(memories ...MemoryType) *Builder {
	entries := make([][]byte, len(memories))
	for i, mem := range memories {
		w := binary.NewWriter()
		writeMemoryType(w, mem)
		entries[i] = w.Bytes()
	}
	return b.Section(SectionMemory, EncodeVec(entries...))
}

// Globals appends a global section.
func (b *Builder) Globals(globals ...Global) *Builder {
	entries := make([][]byte, len(globals))
	for i, g := range globals {
		w := binary.NewWriter()
		writeGlobalType(w, g.Type)
		w.WriteBytes(g.Init)
		entries[i] = w.Bytes()
	}
	return b.Section(SectionGlobal, EncodeVec(entries...))
}

// Exports appends an export section.
func (b *Builder) Exports(exports ...Export) *Builder {
	entries := make([][]byte, len(exports))
	for i, exp := range exports {
		entries[i] = EncodeExport(exp)
	}
	return b.Section(SectionExport, EncodeVec(entries...))
}

// EmptyBodies appends a code section with n bodies holding only `end`.
func (b *Builder) EmptyBodies(n int) *Builder {
	entries := make([][]byte, n)
	for i := range entries {
		// size 2: zero local groups, end
		entries[i] = []byte{0x02, 0x00, OpEnd}
	}
	return b.Section(SectionCode, EncodeVec(entries...))
}

// Bytes returns the encoded binary.
func (b *Builder) Bytes() []byte {
	w := binary.NewWriter()
	w.WriteU32LE(Magic)
	w.WriteU16LE(b.version)
	w.WriteU16LE(b.layer)
	for _, s := range b.sections {
		writeSection(w, s.id, s.body)
	}
	return w.Bytes()
}

// EncodeVec prefixes the concatenated entries with their count.
func EncodeVec(entries ...[]byte) []byte {
	w := binary.NewWriter()
	w.WriteU32(uint32(len(entries)))
	for _, e := range entries {
		w.WriteBytes(e)
	}
	return w.Bytes()
}

// EncodeImport encodes a single import entry.
func EncodeImport(imp Import) []byte {
	w := binary.NewWriter()
	w.WriteName(imp.Module)
	w.WriteName(imp.Name)
	w.Byte(byte(imp.Kind))
	switch imp.Kind {
	case KindFunc:
		w.WriteU32(imp.Desc.TypeIdx)
	case KindTable:
		if imp.Desc.Table != nil {
			writeTableType(w, *imp.Desc.Table)
		}
	case KindMemory:
		if imp.Desc.Memory != nil {
			writeMemoryType(w, *imp.Desc.Memory)
		}
	case KindGlobal:
		if imp.Desc.Global != nil {
			writeGlobalType(w, *imp.Desc.Global)
		}
	case KindTag:
		if imp.Desc.Tag != nil {
			writeTagType(w, *imp.Desc.Tag)
		}
	default:
		w.WriteU32(imp.Desc.TypeIdx)
	}
	return w.Bytes()
}

// EncodeExport encodes a single export entry.
func EncodeExport(exp Export) []byte {
	w := binary.NewWriter()
	w.WriteName(exp.Name)
	w.Byte(byte(exp.Kind))
	w.WriteU32(exp.Index)
	return w.Bytes()
}

func writeSection(w *binary.Writer, id byte, data []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(data)))
	w.WriteBytes(data)
}

func writeValTypes(w *binary.Writer, types []ValType) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(byte(t))
	}
}

func writeRefType(w *binary.Writer, vt ValType, ref *RefType) {
	w.Byte(byte(vt))
	if ref != nil && (vt == ValRefNull || vt == ValRef) {
		w.WriteS64(ref.HeapType)
	}
}

func writeLimits(w *binary.Writer, l Limits, extra byte) {
	flags := extra
	if l.Max != nil {
		flags |= LimitsHasMax
	}
	if l.Shared {
		flags |= LimitsShared
	}
	if l.Memory64 {
		flags |= LimitsMemory64
	}
	w.Byte(flags)
	if l.Memory64 {
		w.WriteU64(l.Min)
		if l.Max != nil {
			w.WriteU64(*l.Max)
		}
		return
	}
	w.WriteU32(uint32(l.Min))
	if l.Max != nil {
		w.WriteU32(uint32(*l.Max))
	}
}

func writeTableType(w *binary.Writer, t TableType) {
	writeRefType(w, t.ElemType, t.RefElemType)
	writeLimits(w, t.Limits, 0)
}

func writeMemoryType(w *binary.Writer, m MemoryType) {
	if m.PageSizeLog2 != nil {
		writeLimits(w, m.Limits, LimitsCustomPageSize)
		w.WriteU32(*m.PageSizeLog2)
		return
	}
	writeLimits(w, m.Limits, 0)
}

func writeGlobalType(w *binary.Writer, g GlobalType) {
	writeRefType(w, g.ValType, g.RefType)
	if g.Mutable {
		w.Byte(1)
	} else {
		w.Byte(0)
	}
}

func writeTagType(w *binary.Writer, t TagType) {
	w.Byte(t.Attribute)
	w.WriteU32(t.TypeIdx)
}
