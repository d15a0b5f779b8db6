// Package handler runs an entry point over host memory: it borrows the input
// region, calls the plugin, copies the output into a fresh allocation and
// packs the result. Every failure leaves as a packed failure carrying a
// diagnostic message.
package handler

import (
	"fmt"
	"sync"

	"github.com/otelwasm/msgwasm/guest/api"
	"github.com/otelwasm/msgwasm/guest/config"
	"github.com/otelwasm/msgwasm/guest/internal/mem"
	"github.com/otelwasm/msgwasm/guest/internal/result"
	"github.com/otelwasm/msgwasm/guest/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrorText is the payload returned by the *_err exports.
const ErrorText = "this is an error"

// Func turns the input document into output bytes.
type Func func(input []byte) ([]byte, *api.Status)

var (
	loadOnce sync.Once
	settings *config.Config
)

// Settings returns the module configuration, loading it on first use.
func Settings() *config.Config {
	loadOnce.Do(func() {
		if settings != nil {
			return
		}
		cfg, err := config.Load()
		if err != nil {
			logging.L().Warn("invalid configuration, using defaults", zap.Error(err))
			cfg = config.Default()
		}
		logging.Configure(cfg.Level())
		settings = cfg
	})
	return settings
}

// SetSettings overrides the configuration.
func SetSettings(cfg *config.Config) {
	loadOnce.Do(func() {})
	settings = cfg
}

// Handle runs fn for the export name over the region (ptr, size). ptr must
// be the exact pointer returned by alloc; an offset inside a larger
// allocation is rejected as an invalid region. size may be shorter than the
// allocation.
func Handle(name string, ptr, size uint32, fn Func) uint64 {
	cfg := Settings()
	logger := logging.L().With(zap.String("export", name))

	if limit := cfg.MaxInputSize; limit > 0 && int64(size) > limit {
		return fail(logger, fmt.Sprintf("input of %d bytes exceeds limit of %d bytes", size, limit))
	}

	input, err := mem.View(ptr, size)
	if err != nil {
		return fail(logger, err.Error())
	}

	output, status := call(fn, input)
	if !status.IsSuccess() {
		return fail(logger, status.Text())
	}
	return write(logger, output, false)
}

// Fail returns a packed failure carrying reason.
func Fail(name, reason string) uint64 {
	Settings()
	return write(logging.L().With(zap.String("export", name)), []byte(reason), true)
}

func call(fn Func, input []byte) (output []byte, status *api.Status) {
	defer func() {
		if r := recover(); r != nil {
			output, status = nil, api.StatusError(fmt.Sprintf("panic: %v", r))
		}
	}()
	return fn(input)
}

func fail(logger *zap.Logger, reason string) uint64 {
	logger.Warn("call failed", zap.String("reason", reason))
	return write(logger, []byte(reason), true)
}

func write(logger *zap.Logger, data []byte, failed bool) uint64 {
	if uint64(len(data)) > uint64(result.MaxLength) {
		reason := fmt.Sprintf("%v: %d bytes", result.ErrLengthOverflow, len(data))
		logger.Warn("call failed", zap.String("reason", reason))
		data, failed = []byte(reason), true
	}

	ptr, size, err := mem.Transfer(data)
	if err != nil {
		// Unreachable after the length check above.
		panic(err)
	}
	packed, err := result.Pack(ptr, size, failed)
	if err != nil {
		panic(err)
	}

	if ce := logger.Check(zapcore.DebugLevel, "call returned"); ce != nil {
		arena := mem.Default()
		ce.Write(
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Bool("failed", failed),
			zap.Int("pinned_regions", arena.Len()),
			zap.Uint64("pinned_bytes", arena.Size()),
		)
	}
	return packed
}
