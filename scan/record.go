package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/wippyai/sc-scan/errors"
)

// RecordType is the value of the "type" discriminator on the wire.
type RecordType string

const (
	TypeVersion RecordType = "Version"
	TypeImport  RecordType = "Import"
	TypeExport  RecordType = "Export"
)

// Record is one entry of a scan result: *VersionRecord, *ImportRecord or
// *ExportRecord.
type Record interface {
	Type() RecordType
	record()
}

// VersionRecord describes the binary header.
type VersionRecord struct {
	// Num is the raw version field; 1 for current core modules.
	Num uint16
	// IsModule is false for components.
	IsModule bool
}

// ImportRecord describes one import entry.
type ImportRecord struct {
	Module string
	Name   string
	Kind   ImportKind
}

// ExportRecord describes one export entry. Index is relative to the index
// space of Kind.
type ExportRecord struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

func (*VersionRecord) Type() RecordType { return TypeVersion }
func (*ImportRecord) Type() RecordType  { return TypeImport }
func (*ExportRecord) Type() RecordType  { return TypeExport }

func (*VersionRecord) record() {}
func (*ImportRecord) record()  {}
func (*ExportRecord) record()  {}

// Wire shapes. Field names and order are fixed; UI code parses them.

type versionWire struct {
	Type     RecordType `json:"type"`
	Num      uint16     `json:"num"`
	IsModule bool       `json:"is_module"`
}

type importWire struct {
	Type   RecordType `json:"type"`
	Module string     `json:"module"`
	Name   string     `json:"name"`
	Kind   string     `json:"kind"`
}

type exportWire struct {
	Type  RecordType `json:"type"`
	Name  string     `json:"name"`
	Kind  string     `json:"kind"`
	Index uint32     `json:"index"`
}

func toWire(r Record) (any, bool) {
	switch rec := r.(type) {
	case *VersionRecord:
		return versionWire{Type: TypeVersion, Num: rec.Num, IsModule: rec.IsModule}, true
	case *ImportRecord:
		return importWire{Type: TypeImport, Module: rec.Module, Name: rec.Name, Kind: string(rec.Kind)}, true
	case *ExportRecord:
		return exportWire{Type: TypeExport, Name: rec.Name, Kind: string(rec.Kind), Index: rec.Index}, true
	default:
		return nil, false
	}
}

// Marshal encodes records as a JSON array. A nil or empty slice encodes
// as "[]". HTML characters in names are written as-is.
func Marshal(records []Record) ([]byte, error) {
	wire := make([]any, 0, len(records))
	for i, r := range records {
		w, ok := toWire(r)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseSerialize, []string{strconv.Itoa(i)},
				fmt.Sprintf("unsupported record %T", r))
		}
		wire = append(wire, w)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wire); err != nil {
		return nil, errors.Wrap(errors.PhaseSerialize, errors.KindInvalidData, err, "encode records")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a JSON array produced by Marshal.
func Unmarshal(data []byte) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.PhaseSerialize, errors.KindInvalidData, err, "decode records")
	}

	records := make([]Record, 0, len(raw))
	for i, msg := range raw {
		rec, err := decodeRecord(msg)
		if err != nil {
			return nil, errors.New(errors.PhaseSerialize, errors.KindInvalidData).
				Path(strconv.Itoa(i)).
				Cause(err).
				Build()
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(msg json.RawMessage) (Record, error) {
	var head struct {
		Type RecordType `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}

	switch head.Type {
	case TypeVersion:
		var w versionWire
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, err
		}
		return &VersionRecord{Num: w.Num, IsModule: w.IsModule}, nil
	case TypeImport:
		var w importWire
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, err
		}
		kind, err := ParseImportKind(w.Kind)
		if err != nil {
			return nil, err
		}
		return &ImportRecord{Module: w.Module, Name: w.Name, Kind: kind}, nil
	case TypeExport:
		var w exportWire
		if err := json.Unmarshal(msg, &w); err != nil {
			return nil, err
		}
		kind, err := ParseExportKind(w.Kind)
		if err != nil {
			return nil, err
		}
		return &ExportRecord{Name: w.Name, Kind: kind, Index: w.Index}, nil
	default:
		return nil, errors.InvalidData(errors.PhaseSerialize, []string{"type"},
			"unknown record type "+strconv.Quote(string(head.Type)))
	}
}
