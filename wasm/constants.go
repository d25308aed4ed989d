package wasm

// WebAssembly binary preamble.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the header version of current core modules.
	Version uint16 = 0x01

	// ComponentVersion is the header version emitted by component encoders.
	ComponentVersion uint16 = 0x0D
)

// Header layers. The 16 bits following the version select the encoding.
const (
	LayerModule    uint16 = 0x00
	LayerComponent uint16 = 0x01
)

// HeaderSize is the length of magic, version and layer together.
const HeaderSize = 8

// Section IDs define the binary identifiers for each core module section.
const (
	SectionCustom    byte = 0  // Custom section (can appear anywhere)
	SectionType      byte = 1  // Type section (function signatures)
	SectionImport    byte = 2  // Import section
	SectionFunction  byte = 3  // Function section (type indices)
	SectionTable     byte = 4  // Table section
	SectionMemory    byte = 5  // Memory section
	SectionGlobal    byte = 6  // Global section
	SectionExport    byte = 7  // Export section
	SectionStart     byte = 8  // Start section
	SectionElement   byte = 9  // Element section
	SectionCode      byte = 10 // Code section (function bodies)
	SectionData      byte = 11 // Data section
	SectionDataCount byte = 12 // Data count section (bulk memory)
	SectionTag       byte = 13 // Tag section (exception handling)
)

// Component section IDs. Only used for naming; component payloads are opaque.
const (
	ComponentSectionCoreModule   byte = 1
	ComponentSectionCoreInstance byte = 2
	ComponentSectionCoreType     byte = 3
	ComponentSectionComponent    byte = 4
	ComponentSectionInstance     byte = 5
	ComponentSectionAlias        byte = 6
	ComponentSectionType         byte = 7
	ComponentSectionCanon        byte = 8
	ComponentSectionStart        byte = 9
	ComponentSectionImport       byte = 10
	ComponentSectionExport       byte = 11
	ComponentSectionValue        byte = 12
)

// Import/Export descriptor kinds identify the type of imported or exported item.
const (
	KindFunc   ExternalKind = 0 // Function import/export
	KindTable  ExternalKind = 1 // Table import/export
	KindMemory ExternalKind = 2 // Memory import/export
	KindGlobal ExternalKind = 3 // Global import/export
	KindTag    ExternalKind = 4 // Tag import/export (exception handling)
)

// Value type encodings needed to walk import descriptors and build modules.
const (
	ValI32     ValType = 0x7F
	ValI64     ValType = 0x7E
	ValF32     ValType = 0x7D
	ValF64     ValType = 0x7C
	ValV128    ValType = 0x7B
	ValFuncRef ValType = 0x70
	ValExtern  ValType = 0x6F

	// GC proposal reference types carrying a heap type immediate
	ValRefNull ValType = 0x63
	ValRef     ValType = 0x64
)

// Limits flags
const (
	LimitsHasMax         byte = 0x01
	LimitsShared         byte = 0x02
	LimitsMemory64       byte = 0x04
	LimitsCustomPageSize byte = 0x08

	limitsMemoryFlags = LimitsHasMax | LimitsShared | LimitsMemory64 | LimitsCustomPageSize
	limitsTableFlags  = LimitsHasMax | LimitsMemory64
)

// Encodings used by the module builder.
const (
	FuncTypeByte byte = 0x60
	OpEnd        byte = 0x0B
	OpI32Const   byte = 0x41
	OpI64Const   byte = 0x42
)
