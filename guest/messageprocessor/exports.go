//go:build wasm

package messageprocessor

var (
	_ func(uint32, uint32) uint64 = _process
	_ func(uint32, uint32) uint64 = _processErr
)

//go:wasmexport process
func _process(ptr, size uint32) uint64 {
	return Process(ptr, size)
}

//go:wasmexport process_err
func _processErr(ptr, size uint32) uint64 {
	return ProcessErr(ptr, size)
}
