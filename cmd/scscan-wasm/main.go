//go:build js && wasm

// Command scscan-wasm exposes the scanner to a browser. Build with
// GOOS=js GOARCH=wasm and load next to wasm_exec.js; it registers
//
//	read_wasm(Uint8Array) string
//	read_wasm_report(Uint8Array) string
//
// on the global object.
package main

import (
	"syscall/js"

	"github.com/wippyai/sc-scan/scan"
)

func main() {
	js.Global().Set("read_wasm", js.FuncOf(func(_ js.Value, args []js.Value) any {
		data, ok := bytesArg(args)
		if !ok {
			return "[]"
		}
		return scan.Scan(data)
	}))
	js.Global().Set("read_wasm_report", js.FuncOf(func(_ js.Value, args []js.Value) any {
		data, ok := bytesArg(args)
		if !ok {
			return `{"records":[],"skipped":[],"error":"expected one Uint8Array argument"}`
		}
		return scan.Report(data)
	}))

	// Keep WASM running
	<-make(chan struct{})
}

func bytesArg(args []js.Value) ([]byte, bool) {
	if len(args) != 1 || !args[0].InstanceOf(js.Global().Get("Uint8Array")) {
		return nil, false
	}
	data := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(data, args[0])
	return data, true
}
