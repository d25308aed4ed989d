package scan

import (
	"fmt"

	"github.com/wippyai/sc-scan/wasm"
)

// ImportKind classifies what an import entry brings in. The string values
// are part of the wire format.
type ImportKind string

const (
	ImportFunc   ImportKind = "Func"
	ImportTable  ImportKind = "Table"
	ImportMemory ImportKind = "Memory"
	ImportGlobal ImportKind = "Global"
	ImportTag    ImportKind = "Tag"
)

// ExportKind classifies what an export entry exposes. The string values
// are part of the wire format.
type ExportKind string

const (
	ExportFunc   ExportKind = "Func"
	ExportTable  ExportKind = "Table"
	ExportMemory ExportKind = "Memory"
	ExportGlobal ExportKind = "Global"
	ExportTag    ExportKind = "Tag"
)

// importKindOf maps the five external kinds. Decoded entries never carry
// another kind, so the second result only guards against a decoder change.
func importKindOf(k wasm.ExternalKind) (ImportKind, bool) {
	switch k {
	case wasm.KindFunc:
		return ImportFunc, true
	case wasm.KindTable:
		return ImportTable, true
	case wasm.KindMemory:
		return ImportMemory, true
	case wasm.KindGlobal:
		return ImportGlobal, true
	case wasm.KindTag:
		return ImportTag, true
	default:
		return "", false
	}
}

func exportKindOf(k wasm.ExternalKind) (ExportKind, bool) {
	switch k {
	case wasm.KindFunc:
		return ExportFunc, true
	case wasm.KindTable:
		return ExportTable, true
	case wasm.KindMemory:
		return ExportMemory, true
	case wasm.KindGlobal:
		return ExportGlobal, true
	case wasm.KindTag:
		return ExportTag, true
	default:
		return "", false
	}
}

// ParseImportKind validates a wire kind string.
func ParseImportKind(s string) (ImportKind, error) {
	switch k := ImportKind(s); k {
	case ImportFunc, ImportTable, ImportMemory, ImportGlobal, ImportTag:
		return k, nil
	default:
		return "", fmt.Errorf("unknown import kind %q", s)
	}
}

// ParseExportKind validates a wire kind string.
func ParseExportKind(s string) (ExportKind, error) {
	switch k := ExportKind(s); k {
	case ExportFunc, ExportTable, ExportMemory, ExportGlobal, ExportTag:
		return k, nil
	default:
		return "", fmt.Errorf("unknown export kind %q", s)
	}
}
