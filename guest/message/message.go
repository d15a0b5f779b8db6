// Package message implements the document exchanged with the host: a header
// map plus an opaque body, serialized as JSON with the body in standard
// base64.
//
//	{"headers": {"k": "v"}, "body": "aGVsbG8="}
package message

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-viper/mapstructure/v2"
)

const (
	headersKey = "headers"
	bodyKey    = "body"
)

var (
	ErrMalformedDocument = errors.New("malformed message document")
	ErrMissingField      = errors.New("missing message field")
	ErrInvalidBody       = errors.New("message body is not valid base64")
	ErrEncode            = errors.New("cannot encode message")
)

// Message is the unit a host hands to the guest. It lives for a single
// entry-point call.
type Message struct {
	Headers map[string]any
	Body    []byte
}

// New returns a message with a non-nil header map.
func New(headers map[string]any, body []byte) *Message {
	if headers == nil {
		headers = map[string]any{}
	}
	return &Message{Headers: headers, Body: body}
}

// Header returns the header value stored under key.
func (m *Message) Header(key string) (any, bool) {
	v, ok := m.Headers[key]
	return v, ok
}

// SetHeader stores value under key, allocating the header map if needed.
func (m *Message) SetHeader(key string, value any) {
	if m.Headers == nil {
		m.Headers = map[string]any{}
	}
	m.Headers[key] = value
}

type headerDocument struct {
	Headers map[string]any `mapstructure:"headers"`
}

type document struct {
	Headers map[string]any `json:"headers"`
	Body    string         `json:"body"`
}

// Decode parses a message document. Numbers inside headers are kept as
// json.Number so they re-encode without loss.
func Decode(data []byte) (*Message, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedDocument)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}

	if _, ok := doc[headersKey]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, headersKey)
	}
	rawBody, ok := doc[bodyKey]
	if !ok || rawBody == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, bodyKey)
	}
	encodedBody, ok := rawBody.(string)
	if !ok {
		return nil, fmt.Errorf("%w: body is %T, not a string", ErrInvalidBody, rawBody)
	}
	body, err := base64.StdEncoding.DecodeString(encodedBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	// Only the header map goes through mapstructure; the body never does.
	var headers headerDocument
	if err := mapstructure.Decode(doc, &headers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if headers.Headers == nil {
		headers.Headers = map[string]any{}
	}
	return &Message{Headers: headers.Headers, Body: body}, nil
}

// Encode serializes msg. A nil header map is written as an empty object.
func Encode(msg *Message) ([]byte, error) {
	doc := document{
		Headers: msg.Headers,
		Body:    base64.StdEncoding.EncodeToString(msg.Body),
	}
	if doc.Headers == nil {
		doc.Headers = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return out, nil
}
