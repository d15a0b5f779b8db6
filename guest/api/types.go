package api

import "github.com/otelwasm/msgwasm/guest/message"

type Plugin interface{}

// MessageProcessor handles the "process" export: it receives the decoded
// input message and returns the message to serialize back to the host.
type MessageProcessor interface {
	Plugin

	ProcessMessage(msg *message.Message) (*message.Message, *Status)
}

// BodyTransformer handles the "transform" export: it receives the decoded
// input message and returns only the raw bytes handed back to the host.
type BodyTransformer interface {
	Plugin

	TransformBody(msg *message.Message) ([]byte, *Status)
}
