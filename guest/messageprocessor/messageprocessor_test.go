package messageprocessor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/otelwasm/msgwasm/guest/api"
	"github.com/otelwasm/msgwasm/guest/config"
	"github.com/otelwasm/msgwasm/guest/guesttest"
	"github.com/otelwasm/msgwasm/guest/internal/handler"
	"github.com/otelwasm/msgwasm/guest/internal/mem"
	"github.com/otelwasm/msgwasm/guest/internal/plugin"
	"github.com/otelwasm/msgwasm/guest/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type processorFunc func(*message.Message) (*message.Message, *api.Status)

func (f processorFunc) ProcessMessage(msg *message.Message) (*message.Message, *api.Status) {
	return f(msg)
}

func setPlugin(t *testing.T, mp api.MessageProcessor) {
	t.Helper()
	handler.SetSettings(config.Default())
	SetPlugin(mp)
	t.Cleanup(func() {
		messageprocessor = nil
		plugin.Reset()
	})
}

func encode(t *testing.T, msg *message.Message) []byte {
	t.Helper()
	b, err := message.Encode(msg)
	require.NoError(t, err)
	return b
}

func TestProcess(t *testing.T) {
	setPlugin(t, processorFunc(func(msg *message.Message) (*message.Message, *api.Status) {
		msg.SetHeader("seen", true)
		msg.Body = append(msg.Body, '!')
		return msg, nil
	}))
	before := mem.Default().Len()

	in := message.New(map[string]any{"id": "42"}, []byte("hi"))
	out, failed := guesttest.Call(t, Process, encode(t, in))
	require.False(t, failed, string(out))

	got, err := message.Decode(out)
	require.NoError(t, err)
	want := message.New(map[string]any{"id": "42", "seen": true}, []byte("hi!"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
	assert.Equal(t, before, mem.Default().Len())
	assert.True(t, plugin.Has(plugin.CapabilityProcess))
}

func TestProcessNilResultKeepsMutation(t *testing.T) {
	setPlugin(t, processorFunc(func(msg *message.Message) (*message.Message, *api.Status) {
		msg.Body = []byte("changed")
		return nil, nil
	}))

	out, failed := guesttest.Call(t, Process, encode(t, message.New(nil, []byte("x"))))
	require.False(t, failed)
	got, err := message.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(got.Body))
}

func TestProcessFailures(t *testing.T) {
	setPlugin(t, processorFunc(func(msg *message.Message) (*message.Message, *api.Status) {
		if string(msg.Body) == "reject" {
			return nil, api.StatusError("rejected by plugin")
		}
		return msg, nil
	}))

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "malformed", input: []byte(`{not json`), want: message.ErrMalformedDocument.Error()},
		{name: "missing body", input: []byte(`{"headers": {}}`), want: message.ErrMissingField.Error()},
		{name: "bad base64", input: []byte(`{"headers": {}, "body": "%%"}`), want: message.ErrInvalidBody.Error()},
		{name: "plugin status", input: encode(t, message.New(nil, []byte("reject"))), want: "rejected by plugin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, failed := guesttest.Call(t, Process, tt.input)
			assert.True(t, failed)
			assert.Contains(t, string(out), tt.want)
		})
	}
}

func TestProcessWithoutPlugin(t *testing.T) {
	handler.SetSettings(config.Default())
	messageprocessor = nil

	out, failed := guesttest.Call(t, Process, encode(t, message.New(nil, nil)))
	assert.True(t, failed)
	assert.Equal(t, "no message processor registered", string(out))
}

func TestProcessErr(t *testing.T) {
	handler.SetSettings(config.Default())

	for _, input := range [][]byte{nil, []byte("anything"), []byte(`{"headers": {}, "body": ""}`)} {
		out, failed := guesttest.Call(t, ProcessErr, input)
		assert.True(t, failed)
		assert.Equal(t, "this is an error", string(out))
	}
}

func TestSetPluginNil(t *testing.T) {
	assert.Panics(t, func() { SetPlugin(nil) })
}
