// Package fixture builds reference binaries shaped like the output of two
// common toolchains. Both compile under a conforming WebAssembly engine.
package fixture

import "github.com/wippyai/sc-scan/wasm"

// AssemblyScriptImports lists the imports of AssemblyScript in file order.
var AssemblyScriptImports = []wasm.Import{
	{Module: "massa", Name: "assembly_script_generate_event", Kind: wasm.KindFunc},
	{Module: "massa", Name: "assembly_script_get_data", Kind: wasm.KindFunc},
	{Module: "massa", Name: "assembly_script_set_data", Kind: wasm.KindFunc},
	{Module: "massa", Name: "assembly_script_caller_has_write_access", Kind: wasm.KindFunc},
	{Module: "massa", Name: "assembly_script_get_call_stack", Kind: wasm.KindFunc},
	{Module: "env", Name: "abort", Kind: wasm.KindFunc},
	{Module: "massa", Name: "assembly_script_print", Kind: wasm.KindFunc},
}

// AssemblyScriptExports lists the exports of AssemblyScript in file order.
var AssemblyScriptExports = []wasm.Export{
	{Name: "memory", Kind: wasm.KindMemory, Index: 0},
	{Name: "__pin", Kind: wasm.KindFunc, Index: 8},
	{Name: "__unpin", Kind: wasm.KindFunc, Index: 9},
	{Name: "__collect", Kind: wasm.KindFunc, Index: 10},
	{Name: "main", Kind: wasm.KindFunc, Index: 13},
	{Name: "constructor", Kind: wasm.KindFunc, Index: 14},
	{Name: "__rtti_base", Kind: wasm.KindGlobal, Index: 2},
	{Name: "__new", Kind: wasm.KindFunc, Index: 7},
}

// AssemblyScript returns a smart-contract style module as emitted by the
// AssemblyScript compiler: host imports from "env" and "massa", runtime
// exports, and a name section.
func AssemblyScript() []byte {
	// 7 imported functions, 8 defined ones: indices 7..14.
	funcs := make([]uint32, 8)
	return wasm.NewModuleBuilder().
		Types(wasm.FuncType{}).
		Imports(AssemblyScriptImports...).
		Functions(funcs...).
		Memories(wasm.MemoryType{Limits: wasm.Limits{Min: 1}}).
		Globals(i32Global(true, 0), i32Global(true, 0), i32Global(false, 1024)).
		Exports(AssemblyScriptExports...).
		EmptyBodies(len(funcs)).
		Custom("name", []byte{0x00, 0x07, 0x06, 'a', 's', 'c', '_', 'o', 'k'}).
		Custom("sourceMappingURL", []byte("\x0dmain.wasm.map")).
		Bytes()
}

// WasmBindgenImportName is the hashed import name wasm-bindgen generates
// for an extern "alert" binding.
const WasmBindgenImportName = "__wbg_alert_8755b7883b6ce0ef"

// WasmBindgenImports lists the imports of WasmBindgen.
var WasmBindgenImports = []wasm.Import{
	{Module: "./wasm_test_02_bg.js", Name: WasmBindgenImportName, Kind: wasm.KindFunc},
}

// WasmBindgenExports lists the exports of WasmBindgen in file order.
var WasmBindgenExports = []wasm.Export{
	{Name: "memory", Kind: wasm.KindMemory, Index: 0},
	{Name: "greet", Kind: wasm.KindFunc, Index: 1},
	{Name: "data", Kind: wasm.KindGlobal, Index: 1},
	{Name: "__wbindgen_malloc", Kind: wasm.KindFunc, Index: 2},
	{Name: "__wbindgen_realloc", Kind: wasm.KindFunc, Index: 3},
}

// WasmBindgen returns a module shaped like wasm-bindgen output for a crate
// exporting greet and a static named data, with a link_section custom
// section "data_A".
func WasmBindgen() []byte {
	return wasm.NewModuleBuilder().
		Types(wasm.FuncType{}).
		Imports(WasmBindgenImports...).
		Functions(0, 0, 0).
		Memories(wasm.MemoryType{Limits: wasm.Limits{Min: 17}}).
		Globals(i32Global(true, 1048576), i32Global(false, 1048576)).
		Exports(WasmBindgenExports...).
		EmptyBodies(3).
		Custom("data_A", []byte("hello world A")).
		Custom("producers", []byte{0x01, 0x08, 'l', 'a', 'n', 'g', 'u', 'a', 'g', 'e', 0x01, 0x04, 'R', 'u', 's', 't', 0x00}).
		Bytes()
}

// i32Global returns an i32 global initialised with a constant.
func i32Global(mutable bool, v uint32) wasm.Global {
	init := []byte{wasm.OpI32Const}
	// signed LEB128 of a non-negative value below 2^31
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 && b&0x40 == 0 {
			init = append(init, b)
			break
		}
		init = append(init, b|0x80)
	}
	init = append(init, wasm.OpEnd)
	return wasm.Global{Type: wasm.GlobalType{ValType: wasm.ValI32, Mutable: mutable}, Init: init}
}
