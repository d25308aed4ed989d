// Package scscan lists the version, imports and exports of WebAssembly
// binaries.
//
// The scanner never executes or validates code. It walks the section
// framing of a module (or the header of a component) and reports what the
// binary declares it needs from its host and what it offers back, as a
// JSON array of tagged records:
//
//	[{"type":"Version","num":1,"is_module":true},
//	 {"type":"Import","module":"env","name":"abort","kind":"Func"},
//	 {"type":"Export","name":"main","kind":"Func","index":13}]
//
// # Architecture Overview
//
//	scscan/
//	├── wasm/            Streaming payload parser and binary builder
//	├── scan/            Record extraction and the JSON wire format
//	├── crosscheck/      Comparison of scan results against wazero
//	├── errors/          Structured error types for debugging
//	├── config/          CLI configuration (file, environment, flags)
//	├── logging/         zap logger construction
//	├── internal/cli/    scscan commands
//	└── cmd/
//	    ├── scscan/      Command line entry point
//	    └── scscan-wasm/ Browser entry point (GOOS=js GOARCH=wasm)
//
// # Quick Start
//
//	out := scan.Scan(data) // "[]" on any framing error
//
// Typed access, including the entries that were skipped:
//
//	res, err := scan.Collect(data)
//	if err != nil {
//	    // framing error: *errors.Error with phase header or section
//	}
//	for _, r := range res.Records {
//	    switch rec := r.(type) {
//	    case *scan.ImportRecord:
//	        fmt.Println(rec.Module, rec.Name, rec.Kind)
//	    }
//	}
//
// # Error Handling
//
// Errors carry a phase and a kind, and unwrap to the parser's sentinel
// errors:
//
//	var serr *errors.Error
//	if stderrors.As(err, &serr) {
//	    fmt.Println(serr.Phase, serr.Kind, serr.Offset)
//	}
//	if stderrors.Is(err, wasm.ErrInvalidMagic) {
//	    // not a WebAssembly binary
//	}
package scscan
