// Package wasm walks the top-level structure of WebAssembly binaries.
//
// A Parser validates the 8-byte header and the framing of every section,
// and produces one Payload per section in file order. Import and export
// sections are decoded lazily: their payloads carry readers whose Entries
// iterators yield one (entry, error) pair per declared entry.
//
// # Parsing
//
//	p := wasm.NewParser(data)
//	for payload, err := range p.Payloads() {
//	    if err != nil {
//	        return err // framing error, nothing after it can be trusted
//	    }
//	    switch pl := payload.(type) {
//	    case wasm.VersionPayload:
//	        fmt.Println(pl.Num, pl.Encoding)
//	    case wasm.ImportSectionPayload:
//	        for imp, err := range pl.Entries() {
//	            if err != nil {
//	                continue // a single bad entry
//	            }
//	            fmt.Println(imp.Module, imp.Name, imp.Kind)
//	        }
//	    }
//	}
//
// # Error tiers
//
// Errors returned by Parser.Next concern the frame: the header, a section
// id or size, a custom section name or an import/export entry count. They
// end the parse.
//
// Errors yielded by an Entries iterator concern one entry. Semantic problems
// such as an unknown kind tag, invalid UTF-8 or min > max limits leave the
// cursor on the next entry, so iteration continues. Truncated or overlong
// integers leave the cursor at an unknown offset and end that section's
// iteration.
//
// All errors carry the absolute byte offset as a *ParseError and unwrap to
// the sentinels declared in errors.go.
//
// # Components
//
// Component binaries are recognised by their header layer. Their sections,
// including nested core modules, are reported as opaque SectionPayloads.
//
// # Building
//
// Builder writes binaries section by section without validating them, for
// fixtures and tests:
//
//	data := wasm.NewModuleBuilder().
//	    Types(wasm.FuncType{}).
//	    Imports(wasm.Import{Module: "env", Name: "abort", Kind: wasm.KindFunc}).
//	    Bytes()
package wasm
