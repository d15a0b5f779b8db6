//go:build wasm

package mem

import (
	"github.com/otelwasm/msgwasm/guest/logging"
	"go.uber.org/zap"
)

var (
	_ func(uint32) uint32 = _alloc
	_ func(uint32, uint32) = _dealloc
)

//go:wasmexport alloc
func _alloc(size uint32) uint32 {
	return Alloc(size)
}

// dealloc has no return value, so misuse can only be reported in the log.
//
//go:wasmexport dealloc
func _dealloc(ptr, size uint32) {
	if err := Dealloc(ptr, size); err != nil {
		logging.L().Error("dealloc rejected",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err),
		)
	}
}
