package wasm

import "fmt"

// Encoding identifies the top-level binary format announced by the header.
type Encoding uint8

const (
	EncodingModule Encoding = iota
	EncodingComponent
)

func (e Encoding) String() string {
	switch e {
	case EncodingModule:
		return "module"
	case EncodingComponent:
		return "component"
	default:
		return "unknown"
	}
}

// ExternalKind classifies the entity named by an import or export entry.
type ExternalKind byte

func (k ExternalKind) String() string {
	switch k {
	case KindFunc:
		return "func"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("kind(0x%02x)", byte(k))
	}
}

// Valid reports whether k is one of the five kinds defined by the format.
func (k ExternalKind) Valid() bool {
	return k <= KindTag
}

// ValType represents a WebAssembly value type.
// See constants.go for ValI32, ValI64, ValF32, ValF64, etc.
type ValType byte

func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValV128:
		return "v128"
	case ValFuncRef:
		return "funcref"
	case ValExtern:
		return "externref"
	case ValRefNull:
		return "ref null"
	case ValRef:
		return "ref"
	default:
		return "unknown"
	}
}

// RefType represents a reference type with nullable flag and heap type
type RefType struct {
	Nullable bool
	HeapType int64 // Encoded as s33: negative for abstract types, positive for type indices
}

// Range is a half-open byte interval [Start, End) of the scanned input.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// Import represents an imported function, table, memory, global, or tag.
type Import struct {
	Desc   ImportDesc
	Module string
	Name   string
	Kind   ExternalKind
}

// ImportDesc describes an imported item. Exactly one field matches the
// import's Kind; TypeIdx is used by function imports.
type ImportDesc struct {
	Table   *TableType
	Memory  *MemoryType
	Global  *GlobalType
	Tag     *TagType
	TypeIdx uint32
}

// TableType describes a table with element type and size limits.
type TableType struct {
	RefElemType *RefType
	Limits      Limits
	ElemType    ValType
}

// MemoryType describes a linear memory with size limits.
type MemoryType struct {
	// PageSizeLog2 is set when the custom-page-sizes flag is present.
	PageSizeLog2 *uint32
	Limits       Limits
}

// Limits describes size constraints for tables and memories.
type Limits struct {
	Max      *uint64
	Min      uint64
	Shared   bool
	Memory64 bool
}

// GlobalType describes a global variable's type and mutability.
type GlobalType struct {
	RefType *RefType
	ValType ValType
	Mutable bool
}

// TagType describes an exception handling tag type.
type TagType struct {
	Attribute byte   // Tag attribute (0 = exception)
	TypeIdx   uint32 // Function type index for tag signature
}

// Export describes an exported item.
type Export struct {
	Name  string
	Kind  ExternalKind
	Index uint32
}
