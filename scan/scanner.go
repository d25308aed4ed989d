package scan

import (
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/sc-scan/errors"
	"github.com/wippyai/sc-scan/wasm"
)

// emptyResult is returned by Scan whenever no trustworthy record list exists.
const emptyResult = "[]"

// Skipped describes an import or export entry dropped because it could not
// be decoded.
type Skipped struct {
	Err error
	// Section is "import" or "export".
	Section string
	// Index is the entry's position within its section.
	Index uint32
	// Offset is the absolute byte offset of the entry.
	Offset int
}

// Result holds the records of one scan in discovery order, together with
// the entries that were skipped along the way.
type Result struct {
	Records []Record
	Skipped []Skipped
}

// Scan extracts the version, import and export records of a WebAssembly
// binary and returns them as a JSON array. Any framing error, and any
// failure to serialize, yields "[]". Scan never panics.
func Scan(data []byte) (out string) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("scan panicked", zap.Any("panic", r), zap.Int("size", len(data)))
			out = emptyResult
		}
	}()

	res, err := Collect(data)
	if err != nil {
		return emptyResult
	}
	b, err := Marshal(res.Records)
	if err != nil {
		Logger().Warn("marshal records", zap.Error(err))
		return emptyResult
	}
	return string(b)
}

// Collect runs the scan and returns typed records. Entry-level failures
// are listed in Result.Skipped and do not stop the scan. A framing error
// discards everything collected so far and is returned as an *errors.Error
// with phase header or section.
func Collect(data []byte) (*Result, error) {
	s := &scanner{log: Logger(), res: &Result{}}

	for payload, err := range wasm.NewParser(data).Payloads() {
		if err != nil {
			ferr := frameError(data, err)
			s.log.Debug("framing error, discarding records",
				zap.Error(err),
				zap.Int("records", len(s.res.Records)))
			return nil, ferr
		}

		switch p := payload.(type) {
		case wasm.VersionPayload:
			s.add(&VersionRecord{Num: p.Num, IsModule: p.Encoding == wasm.EncodingModule})
		case wasm.ImportSectionPayload:
			s.imports(p.ImportSectionReader)
		case wasm.ExportSectionPayload:
			s.exports(p.ExportSectionReader)
		default:
			// Every other payload carries nothing the scan reports.
		}
	}

	return s.res, nil
}

type scanner struct {
	log *zap.Logger
	res *Result
}

func (s *scanner) add(r Record) {
	s.res.Records = append(s.res.Records, r)
}

func (s *scanner) imports(r *wasm.ImportSectionReader) {
	var i uint32
	for imp, err := range r.Entries() {
		if err != nil {
			s.skip("import", i, err)
		} else if kind, ok := importKindOf(imp.Kind); ok {
			s.add(&ImportRecord{Module: imp.Module, Name: imp.Name, Kind: kind})
		} else {
			s.skip("import", i, wasm.ErrUnknownKind)
		}
		i++
	}
}

func (s *scanner) exports(r *wasm.ExportSectionReader) {
	var i uint32
	for exp, err := range r.Entries() {
		if err != nil {
			s.skip("export", i, err)
		} else if kind, ok := exportKindOf(exp.Kind); ok {
			s.add(&ExportRecord{Name: exp.Name, Kind: kind, Index: exp.Index})
		} else {
			s.skip("export", i, wasm.ErrUnknownKind)
		}
		i++
	}
}

func (s *scanner) skip(section string, index uint32, err error) {
	sk := Skipped{Section: section, Index: index, Err: err, Offset: -1}
	var pe *wasm.ParseError
	if stderrors.As(err, &pe) {
		sk.Offset = pe.Position
	}
	s.res.Skipped = append(s.res.Skipped, sk)
	s.log.Debug("skipped entry",
		zap.String("section", section),
		zap.Uint32("index", index),
		zap.Int("offset", sk.Offset),
		zap.Error(err))
}

// frameError classifies a parser error into the structured error taxonomy.
func frameError(data []byte, err error) *errors.Error {
	section, offset := "", 0
	var pe *wasm.ParseError
	if stderrors.As(err, &pe) {
		section, offset = pe.Section, pe.Position
	}
	phase := errors.PhaseSection
	if section == "header" {
		phase = errors.PhaseHeader
	}

	switch {
	case stderrors.Is(err, wasm.ErrEmptyInput):
		return errors.EmptyInput()
	case stderrors.Is(err, wasm.ErrInvalidMagic):
		return errors.InvalidMagic(data)
	case stderrors.Is(err, wasm.ErrUnknownLayer):
		return errors.UnknownEncoding(offset, err)
	case stderrors.Is(err, wasm.ErrSectionTooLarge):
		return errors.OutOfBounds(phase, section, offset, err)
	case stderrors.Is(err, wasm.ErrOverflow):
		return errors.Overflow(phase, section, offset, err)
	case stderrors.Is(err, wasm.ErrInvalidUTF8):
		return errors.InvalidUTF8(phase, section, offset, err)
	case stderrors.Is(err, wasm.ErrUnexpectedEOF):
		return errors.Truncated(phase, section, offset, err)
	default:
		return errors.New(phase, errors.KindInvalidData).
			Section(section, offset).
			Cause(err).
			Build()
	}
}
