// Package messageprocessor serves the "process" export: the whole message is
// decoded, handed to the plugin and re-encoded.
package messageprocessor

import (
	"github.com/otelwasm/msgwasm/guest/api"
	"github.com/otelwasm/msgwasm/guest/internal/handler"
	"github.com/otelwasm/msgwasm/guest/internal/plugin"
	"github.com/otelwasm/msgwasm/guest/message"
)

var messageprocessor api.MessageProcessor

func SetPlugin(mp api.MessageProcessor) {
	if mp == nil {
		panic("nil MessageProcessor")
	}
	messageprocessor = mp
	plugin.MustSet(plugin.CapabilityProcess, mp)
}

// Process decodes the document at (ptr, size), runs the plugin and returns
// the packed re-encoded message.
func Process(ptr, size uint32) uint64 {
	return handler.Handle("process", ptr, size, processMessage)
}

// ProcessErr ignores its input and returns the fixed failure payload.
func ProcessErr(ptr, size uint32) uint64 {
	return handler.Fail("process_err", handler.ErrorText)
}

func processMessage(input []byte) ([]byte, *api.Status) {
	if messageprocessor == nil {
		return nil, api.StatusError("no message processor registered")
	}

	msg, err := message.Decode(input)
	if err != nil {
		return nil, api.StatusInvalidArgument(err.Error())
	}

	result, status := messageprocessor.ProcessMessage(msg)
	if !status.IsSuccess() {
		return nil, status
	}
	// A nil result means the plugin mutated msg in place.
	if result == nil {
		result = msg
	}

	out, err := message.Encode(result)
	if err != nil {
		return nil, api.StatusError(err.Error())
	}
	return out, nil
}
