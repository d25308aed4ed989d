// Package crosscheck validates scan results against an independent decoder.
//
// Compare compiles the binary with wazero and checks that the function and
// memory imports and exports it reports match the scanned records. Tables,
// globals and tags are not compared: wazero does not expose them on a
// compiled module.
package crosscheck

import (
	"context"
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/sc-scan/errors"
	"github.com/wippyai/sc-scan/scan"
)

// Entity is an import or export as seen by one side of the comparison.
type Entity struct {
	Module string
	Name   string
	Kind   string
	Index  uint32
	Import bool
}

// Key identifies the entity in "namespace#name" form.
func (e Entity) Key() string {
	if e.Import {
		return fmt.Sprintf("import %s#%s (%s)", e.Module, e.Name, e.Kind)
	}
	return fmt.Sprintf("export#%s (%s %d)", e.Name, e.Kind, e.Index)
}

// Report lists the differences found by Compare.
type Report struct {
	// Missing holds entities the compiler reports but the records lack.
	Missing []Entity
	// Unexpected holds records the compiler does not know about.
	Unexpected []Entity
	// Compared is the number of entities the compiler reported.
	Compared int
}

// OK reports whether both sides agree.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0
}

// Err returns nil when both sides agree, or an *errors.MismatchError.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.NewMismatchError(keys(r.Missing), keys(r.Unexpected))
}

func keys(entities []Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Key()
	}
	return out
}

// Compare compiles data and checks its function and memory imports and
// exports against records. Only core modules can be compared.
func Compare(ctx context.Context, data []byte, records []scan.Record) (*Report, error) {
	for _, r := range records {
		if v, ok := r.(*scan.VersionRecord); ok && !v.IsModule {
			return nil, errors.Unsupported(errors.PhaseVerify, "components cannot be compiled as core modules")
		}
	}

	cfg := wazero.NewRuntimeConfigInterpreter().WithCoreFeatures(api.CoreFeaturesV2)
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseVerify, errors.KindInvalidData, err, "compile module")
	}
	defer compiled.Close(ctx)

	want := compilerEntities(compiled)
	got := recordEntities(records)
	report := diff(want, got)

	Logger().Debug("cross-checked records",
		zap.Int("compared", report.Compared),
		zap.Int("missing", len(report.Missing)),
		zap.Int("unexpected", len(report.Unexpected)))
	return report, nil
}

func compilerEntities(m wazero.CompiledModule) []Entity {
	var out []Entity
	for _, def := range m.ImportedFunctions() {
		mod, name, _ := def.Import()
		out = append(out, Entity{Module: mod, Name: name, Kind: string(scan.ImportFunc), Import: true})
	}
	for _, def := range m.ImportedMemories() {
		mod, name, _ := def.Import()
		out = append(out, Entity{Module: mod, Name: name, Kind: string(scan.ImportMemory), Import: true})
	}

	// Export maps are unordered; sort by kind, index and name.
	var exports []Entity
	for name, def := range m.ExportedFunctions() {
		exports = append(exports, Entity{Name: name, Kind: string(scan.ExportFunc), Index: def.Index()})
	}
	for name, def := range m.ExportedMemories() {
		exports = append(exports, Entity{Name: name, Kind: string(scan.ExportMemory), Index: def.Index()})
	}
	sort.Slice(exports, func(i, j int) bool {
		a, b := exports[i], exports[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Name < b.Name
	})
	return append(out, exports...)
}

func recordEntities(records []scan.Record) []Entity {
	var out []Entity
	for _, r := range records {
		switch rec := r.(type) {
		case *scan.ImportRecord:
			if rec.Kind == scan.ImportFunc || rec.Kind == scan.ImportMemory {
				out = append(out, Entity{Module: rec.Module, Name: rec.Name, Kind: string(rec.Kind), Import: true})
			}
		case *scan.ExportRecord:
			if rec.Kind == scan.ExportFunc || rec.Kind == scan.ExportMemory {
				out = append(out, Entity{Name: rec.Name, Kind: string(rec.Kind), Index: rec.Index})
			}
		}
	}
	return out
}

// diff compares the two sides as multisets; duplicate imports are legal.
func diff(want, got []Entity) *Report {
	remaining := make(map[Entity]int, len(got))
	for _, e := range got {
		remaining[e]++
	}

	report := &Report{Compared: len(want)}
	for _, e := range want {
		if remaining[e] > 0 {
			remaining[e]--
			continue
		}
		report.Missing = append(report.Missing, e)
	}
	for _, e := range got {
		if remaining[e] > 0 {
			remaining[e]--
			report.Unexpected = append(report.Unexpected, e)
		}
	}
	return report
}
