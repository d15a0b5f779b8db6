// Package bodytransformer serves the "transform" export: the plugin's output
// is returned as raw bytes and the headers are dropped.
package bodytransformer

import (
	"github.com/otelwasm/msgwasm/guest/api"
	"github.com/otelwasm/msgwasm/guest/internal/handler"
	"github.com/otelwasm/msgwasm/guest/internal/plugin"
	"github.com/otelwasm/msgwasm/guest/message"
)

var bodytransformer api.BodyTransformer

func SetPlugin(bt api.BodyTransformer) {
	if bt == nil {
		panic("nil BodyTransformer")
	}
	bodytransformer = bt
	plugin.MustSet(plugin.CapabilityTransform, bt)
}

// Transform decodes the document at (ptr, size) and returns the packed raw
// body produced by the plugin.
func Transform(ptr, size uint32) uint64 {
	return handler.Handle("transform", ptr, size, transformBody)
}

// TransformErr ignores its input and returns the fixed failure payload.
func TransformErr(ptr, size uint32) uint64 {
	return handler.Fail("transform_err", handler.ErrorText)
}

func transformBody(input []byte) ([]byte, *api.Status) {
	if bodytransformer == nil {
		return nil, api.StatusError("no body transformer registered")
	}

	msg, err := message.Decode(input)
	if err != nil {
		return nil, api.StatusInvalidArgument(err.Error())
	}
	return bodytransformer.TransformBody(msg)
}
