// Package scan extracts structural metadata from WebAssembly binaries.
//
// Scan is the boundary function: it takes raw bytes and returns a JSON
// array of records describing the header, every import entry and every
// export entry, in file order:
//
//	[{"type":"Version","num":1,"is_module":true},
//	 {"type":"Import","module":"env","name":"abort","kind":"Func"},
//	 {"type":"Export","name":"memory","kind":"Memory","index":0}]
//
// Errors come in two tiers. A malformed import or export entry is skipped
// and the scan goes on. A malformed header or section frame makes every
// later offset untrustworthy, so the whole result is discarded and Scan
// returns "[]".
//
// Collect exposes the same scan to Go callers with a typed error and the
// list of skipped entries.
//
// Scans share no state and may run concurrently.
package scan
