package plugin

import (
	"testing"

	"github.com/otelwasm/msgwasm/guest/api"
	internalplugin "github.com/otelwasm/msgwasm/guest/internal/plugin"
	"github.com/otelwasm/msgwasm/guest/message"
	"github.com/stretchr/testify/assert"
)

type processorOnly struct{}

func (processorOnly) ProcessMessage(msg *message.Message) (*message.Message, *api.Status) {
	return msg, nil
}

type both struct{ processorOnly }

func (both) TransformBody(msg *message.Message) ([]byte, *api.Status) {
	return msg.Body, nil
}

func TestSet(t *testing.T) {
	t.Cleanup(internalplugin.Reset)

	internalplugin.Reset()
	Set(processorOnly{})
	assert.Equal(t, internalplugin.CapabilityProcess, internalplugin.Capabilities())

	internalplugin.Reset()
	Set(both{})
	assert.Equal(t, internalplugin.CapabilityProcess|internalplugin.CapabilityTransform, internalplugin.Capabilities())
}

func TestSetRejectsUnknownPlugin(t *testing.T) {
	assert.Panics(t, func() { Set(struct{}{}) })
	assert.Panics(t, func() { Set(nil) })
}
