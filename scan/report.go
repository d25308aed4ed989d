package scan

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

type skippedWire struct {
	Section string `json:"section"`
	Index   uint32 `json:"index"`
	Offset  int    `json:"offset"`
	Error   string `json:"error"`
}

type reportWire struct {
	Records json.RawMessage `json:"records"`
	Skipped []skippedWire   `json:"skipped"`
	Error   *string         `json:"error"`
}

// Report scans data like Scan but also explains what was lost. The result
// is a JSON object:
//
//	{"records":[...],"skipped":[{"section","index","offset","error"}],"error":null}
//
// records is exactly Scan's output. error holds the framing error message,
// in which case records is empty. Report never panics.
func Report(data []byte) (out string) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("report panicked", zap.Any("panic", r), zap.Int("size", len(data)))
			out = `{"records":[],"skipped":[],"error":"internal error"}`
		}
	}()

	rep := reportWire{Records: json.RawMessage(emptyResult), Skipped: []skippedWire{}}

	res, err := Collect(data)
	if err != nil {
		msg := err.Error()
		rep.Error = &msg
	} else {
		b, merr := Marshal(res.Records)
		if merr != nil {
			msg := merr.Error()
			rep.Error = &msg
		} else {
			rep.Records = b
		}
		for _, sk := range res.Skipped {
			rep.Skipped = append(rep.Skipped, skippedWire{
				Section: sk.Section,
				Index:   sk.Index,
				Offset:  sk.Offset,
				Error:   sk.Err.Error(),
			})
		}
	}

	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return `{"records":[],"skipped":[],"error":"internal error"}`
	}
	return strings.TrimSuffix(b.String(), "\n")
}
