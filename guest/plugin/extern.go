//go:build wasm

package plugin

import internalplugin "github.com/otelwasm/msgwasm/guest/internal/plugin"

var (
	_ func()        = _abiVersionV1
	_ func() uint32 = _getCapabilities
)

//go:wasmexport msgwasm_abi_version_v1
func _abiVersionV1() {}

//go:wasmexport msgwasm_get_capabilities
func _getCapabilities() uint32 {
	return uint32(internalplugin.Capabilities())
}
