package scan_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/sc-scan/internal/fixture"
	"github.com/wippyai/sc-scan/scan"
	"github.com/wippyai/sc-scan/wasm"
)

type report struct {
	Records json.RawMessage `json:"records"`
	Skipped []struct {
		Section string `json:"section"`
		Index   uint32 `json:"index"`
		Offset  int    `json:"offset"`
		Error   string `json:"error"`
	} `json:"skipped"`
	Error *string `json:"error"`
}

func decodeReport(t *testing.T, data []byte) report {
	t.Helper()
	var rep report
	require.NoError(t, json.Unmarshal([]byte(scan.Report(data)), &rep))
	return rep
}

func TestReportClean(t *testing.T) {
	data := fixture.WasmBindgen()
	rep := decodeReport(t, data)

	assert.JSONEq(t, scan.Scan(data), string(rep.Records))
	assert.Empty(t, rep.Skipped)
	assert.Nil(t, rep.Error)
	assert.Contains(t, scan.Report(data), `"skipped":[]`)
}

func TestReportFramingError(t *testing.T) {
	rep := decodeReport(t, []byte("(module)"))

	assert.Equal(t, "[]", string(rep.Records))
	assert.Empty(t, rep.Skipped)
	require.NotNil(t, rep.Error)
	assert.Contains(t, *rep.Error, "invalid_magic")
}

func TestReportSkippedEntries(t *testing.T) {
	body := wasm.EncodeVec(
		wasm.EncodeImport(wasm.Import{Module: "env", Name: "a", Kind: wasm.KindFunc}),
		wasm.EncodeImport(wasm.Import{Module: "env", Name: "x", Kind: 0x42, Desc: wasm.ImportDesc{TypeIdx: 1}}),
	)
	data := wasm.NewModuleBuilder().Section(wasm.SectionImport, body).Bytes()
	rep := decodeReport(t, data)

	assert.Equal(t, scan.Scan(data), string(rep.Records))
	assert.Nil(t, rep.Error)
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, "import", rep.Skipped[0].Section)
	assert.Equal(t, uint32(1), rep.Skipped[0].Index)
	assert.Equal(t, wasm.HeaderSize+3+len(wasm.EncodeImport(wasm.Import{Module: "env", Name: "a", Kind: wasm.KindFunc})), rep.Skipped[0].Offset)
	assert.NotEmpty(t, rep.Skipped[0].Error)
}
