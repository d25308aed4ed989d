package wasm

import (
	"fmt"
	"iter"

	"github.com/wippyai/sc-scan/wasm/internal/binary"
)

// entries is the undecoded remainder of a section whose body starts with
// an entry count.
type entries struct {
	data  []byte
	base  int
	count uint32
}

func newEntries(body *binary.Reader, count uint32) entries {
	base := body.Position()
	return entries{data: body.Remaining(), base: base, count: count}
}

// ImportSectionReader decodes the entries of an import section on demand.
type ImportSectionReader struct {
	entries entries
}

// Count returns the number of entries the section declares.
func (s *ImportSectionReader) Count() uint32 {
	return s.entries.count
}

// Entries returns an iterator over the import entries. Every entry yields
// either a decoded Import or an error; a failed entry does not stop the
// iteration unless the decoder lost track of entry boundaries (truncated or
// overlong integer), in which case nothing further is yielded. Leftover bytes
// after the declared count yield one final ErrSectionSizeMismatch.
//
// The iterator may be ranged over any number of times.
func (s *ImportSectionReader) Entries() iter.Seq2[Import, error] {
	return iterate(s.entries, "import entry", readImport)
}

// ExportSectionReader decodes the entries of an export section on demand.
type ExportSectionReader struct {
	entries entries
}

// Count returns the number of entries the section declares.
func (s *ExportSectionReader) Count() uint32 {
	return s.entries.count
}

// Entries returns an iterator over the export entries with the same error
// behaviour as ImportSectionReader.Entries.
func (s *ExportSectionReader) Entries() iter.Seq2[Export, error] {
	return iterate(s.entries, "export entry", readExport)
}

func iterate[T any](e entries, what string, read func(*binary.Reader) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		r := binary.NewReader(e.data, e.base)
		for i := uint32(0); i < e.count; i++ {
			start := r.Position()
			v, err := read(r)
			if err != nil {
				err = &ParseError{Section: fmt.Sprintf("%s %d", what, i), Position: start, Err: err}
				if !yield(zero, err) || desynced(err) {
					return
				}
				continue
			}
			if !yield(v, nil) {
				return
			}
		}
		if !r.AtEnd() {
			yield(zero, r.WrapError(what, ErrSectionSizeMismatch))
		}
	}
}

// recoverable records err as the entry's outcome when decoding can go on.
// It returns false when err desynchronised the cursor.
func recoverable(first *error, err error) bool {
	if desynced(err) {
		return false
	}
	if *first == nil {
		*first = err
	}
	return true
}

func readImport(r *binary.Reader) (Import, error) {
	var imp Import
	var first error

	module, err := r.ReadName()
	if err != nil && !recoverable(&first, err) {
		return Import{}, err
	}
	name, err := r.ReadName()
	if err != nil && !recoverable(&first, err) {
		return Import{}, err
	}
	kind, err := r.ReadByte()
	if err != nil {
		return Import{}, err
	}

	imp.Module = module
	imp.Name = name
	imp.Kind = ExternalKind(kind)

	imp.Desc, err = readImportDesc(r, imp.Kind)
	if err != nil && !recoverable(&first, err) {
		return Import{}, err
	}
	if first != nil {
		return Import{}, first
	}
	return imp, nil
}

func readImportDesc(r *binary.Reader, kind ExternalKind) (ImportDesc, error) {
	var desc ImportDesc
	switch kind {
	case KindFunc:
		idx, err := r.ReadU32()
		if err != nil {
			return desc, err
		}
		desc.TypeIdx = idx
		return desc, nil
	case KindTable:
		table, err := readTableType(r)
		desc.Table = &table
		return desc, err
	case KindMemory:
		memory, err := readMemoryType(r)
		desc.Memory = &memory
		return desc, err
	case KindGlobal:
		global, err := readGlobalType(r)
		desc.Global = &global
		return desc, err
	case KindTag:
		tag, err := readTagType(r)
		desc.Tag = &tag
		return desc, err
	default:
		// Unknown kinds are assumed to carry a single index, the shape every
		// index-like descriptor shares, so the next entry can still be read.
		if _, err := r.ReadU32(); err != nil {
			return desc, err
		}
		return desc, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, byte(kind))
	}
}

func readExport(r *binary.Reader) (Export, error) {
	var first error

	name, err := r.ReadName()
	if err != nil && !recoverable(&first, err) {
		return Export{}, err
	}
	kind, err := r.ReadByte()
	if err != nil {
		return Export{}, err
	}
	idx, err := r.ReadU32()
	if err != nil {
		return Export{}, err
	}

	if !ExternalKind(kind).Valid() {
		recoverable(&first, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, kind))
	}
	if first != nil {
		return Export{}, first
	}
	return Export{Name: name, Kind: ExternalKind(kind), Index: idx}, nil
}
