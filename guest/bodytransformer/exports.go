//go:build wasm

package bodytransformer

var (
	_ func(uint32, uint32) uint64 = _transform
	_ func(uint32, uint32) uint64 = _transformErr
)

//go:wasmexport transform
func _transform(ptr, size uint32) uint64 {
	return Transform(ptr, size)
}

//go:wasmexport transform_err
func _transformErr(ptr, size uint32) uint64 {
	return TransformErr(ptr, size)
}
