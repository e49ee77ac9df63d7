// Package bhttp encodes and decodes HTTP messages in the Binary HTTP format
// (RFC 9292, "Binary Representation of HTTP Messages"), known-length variant.
//
// A Message is built once and never modified:
//
//	ctrl := bhttp.RequestControlData{Method: "GET", Scheme: "https", Path: "/hello.txt"}
//	msg, err := bhttp.NewRequestBuilder(ctrl).
//		SetHeaderFields(bhttp.NewFieldsBuilder().Append("Host", "www.example.com").Build()).
//		Build()
//
//	data, err := bhttp.Marshal(msg)
//	decoded, err := bhttp.Unmarshal(data)
//
// # Wire format
//
//	Message     := Framing ControlData Fields Content Padding
//	Framing     := 0x00 (request) | 0x01 (response)
//	ControlData := method scheme authority path          (requests)
//	             | (status Fields)* final-status          (responses)
//	Fields      := varint(length) (varint(len) name varint(len) value)*
//	Content     := varint(length) bytes
//	Padding     := 0x00*
//
// Sections after the control data may be truncated when empty.
// Indeterminate-length framing (indicators 2 and 3) is not supported.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple
// goroutines. Messages, Fields and control data values are immutable.
//
// # Conversion APIs
//
//   - Marshal/Unmarshal - binary encoding
//   - NewEncoder/NewDecoder - io.Writer and io.Reader wrappers
//   - Parse/Render - AST view via shape-core
//   - FromHTTP1/Message.HTTP1 - HTTP/1.1 text
//   - FromHTTPRequest/FromHTTPResponse - net/http values
package bhttp

import (
	"bytes"
	"fmt"
)

// FramingIndicator is the first byte of a message.
type FramingIndicator byte

const (
	KnownLengthRequest          FramingIndicator = 0
	KnownLengthResponse         FramingIndicator = 1
	IndeterminateLengthRequest  FramingIndicator = 2
	IndeterminateLengthResponse FramingIndicator = 3
)

// IsRequest reports whether the indicator frames a request.
func (f FramingIndicator) IsRequest() bool {
	return f == KnownLengthRequest || f == IndeterminateLengthRequest
}

// IsKnownLength reports whether the indicator selects known-length framing.
func (f FramingIndicator) IsKnownLength() bool {
	return f == KnownLengthRequest || f == KnownLengthResponse
}

// String returns a readable name.
func (f FramingIndicator) String() string {
	switch f {
	case KnownLengthRequest:
		return "known-length request"
	case KnownLengthResponse:
		return "known-length response"
	case IndeterminateLengthRequest:
		return "indeterminate-length request"
	case IndeterminateLengthResponse:
		return "indeterminate-length response"
	}
	return fmt.Sprintf("framing(%d)", byte(f))
}

// Message is a Binary HTTP request or response.
type Message struct {
	framing       FramingIndicator
	controlData   ControlData
	headerFields  Fields
	content       []byte
	paddingLength int
}

// FramingIndicator returns the framing of the message.
func (m *Message) FramingIndicator() FramingIndicator { return m.framing }

// IsRequest reports whether the message is a request.
func (m *Message) IsRequest() bool { return m.framing.IsRequest() }

// ControlData returns the control data; its dynamic type is
// RequestControlData or ResponseControlData.
func (m *Message) ControlData() ControlData { return m.controlData }

// RequestControlData returns the request control data. ok is false for responses.
func (m *Message) RequestControlData() (c RequestControlData, ok bool) {
	c, ok = m.controlData.(RequestControlData)
	return c, ok
}

// ResponseControlData returns the response control data. ok is false for requests.
func (m *Message) ResponseControlData() (c ResponseControlData, ok bool) {
	c, ok = m.controlData.(ResponseControlData)
	return c, ok
}

// HeaderFields returns the header fields.
func (m *Message) HeaderFields() Fields { return m.headerFields }

// Content returns a copy of the content, or nil if there is none.
func (m *Message) Content() []byte {
	if len(m.content) == 0 {
		return nil
	}
	return bytes.Clone(m.content)
}

// PaddingLength returns the number of zero bytes appended on serialization.
// Decoded messages always report 0.
func (m *Message) PaddingLength() int { return m.paddingLength }

// Equal reports whether m and other have the same framing, control data,
// header fields and content. Padding length is ignored, and absent content
// equals empty content.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	switch {
	case m.controlData == nil || other.controlData == nil:
		if (m.controlData == nil) != (other.controlData == nil) {
			return false
		}
	case !m.controlData.Equal(other.controlData):
		return false
	}
	return m.framing == other.framing &&
		m.headerFields.Equal(other.headerFields) &&
		bytes.Equal(m.content, other.content)
}

// AppendBinary appends the Binary HTTP encoding of m, including padding, to b.
// A Message not produced by MessageBuilder or Unmarshal has no control data
// and fails with ErrMissingControlData.
func (m *Message) AppendBinary(b []byte) ([]byte, error) {
	if m.controlData == nil {
		return nil, ErrMissingControlData
	}
	b = append(b, byte(m.framing))

	b, err := m.controlData.AppendBinary(b)
	if err != nil {
		return nil, fmt.Errorf("bhttp: encode control data: %w", err)
	}
	b, err = m.headerFields.AppendBinary(b)
	if err != nil {
		return nil, fmt.Errorf("bhttp: encode header fields: %w", err)
	}
	b = appendString(b, string(m.content))

	for i := 0; i < m.paddingLength; i++ {
		b = append(b, 0)
	}
	return b, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *Message) MarshalBinary() ([]byte, error) {
	return Marshal(m)
}

// MessageBuilder accumulates the parts of a message.
type MessageBuilder struct {
	framing       FramingIndicator
	controlData   ControlData
	headerFields  Fields
	content       []byte
	paddingLength int
}

// NewMessageBuilder returns an empty builder. SetFramingIndicator and
// SetControlData must be called before Build.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{}
}

// NewRequestBuilder returns a builder for a known-length request.
func NewRequestBuilder(c RequestControlData) *MessageBuilder {
	return &MessageBuilder{framing: KnownLengthRequest, controlData: c}
}

// NewResponseBuilder returns a builder for a known-length response.
func NewResponseBuilder(c ResponseControlData) *MessageBuilder {
	return &MessageBuilder{framing: KnownLengthResponse, controlData: c}
}

// SetFramingIndicator sets the framing.
func (b *MessageBuilder) SetFramingIndicator(f FramingIndicator) *MessageBuilder {
	b.framing = f
	return b
}

// SetControlData sets the control data.
func (b *MessageBuilder) SetControlData(c ControlData) *MessageBuilder {
	b.controlData = c
	return b
}

// SetHeaderFields sets the header fields.
func (b *MessageBuilder) SetHeaderFields(f Fields) *MessageBuilder {
	b.headerFields = f
	return b
}

// SetContent sets the content. The bytes are copied on Build.
func (b *MessageBuilder) SetContent(content []byte) *MessageBuilder {
	b.content = content
	return b
}

// SetPaddingLength sets the number of zero bytes appended on serialization.
func (b *MessageBuilder) SetPaddingLength(n int) *MessageBuilder {
	b.paddingLength = n
	return b
}

// Build validates the accumulated parts and returns the message.
func (b *MessageBuilder) Build() (*Message, error) {
	if !b.framing.IsKnownLength() {
		return nil, fmt.Errorf("bhttp: %s: %w", b.framing, ErrUnsupportedFraming)
	}
	if b.controlData == nil {
		return nil, ErrMissingControlData
	}
	if b.controlData.FramingIndicator() != b.framing {
		return nil, fmt.Errorf("bhttp: %T does not match %s framing", b.controlData, b.framing)
	}
	if rc, ok := b.controlData.(ResponseControlData); ok && !isFinalStatus(uint64(rc.finalStatus)) {
		return nil, finalStatusError(rc.finalStatus)
	}
	if b.paddingLength < 0 {
		return nil, fmt.Errorf("bhttp: negative padding length %d", b.paddingLength)
	}

	var content []byte
	if len(b.content) > 0 {
		content = bytes.Clone(b.content)
	}
	return &Message{
		framing:       b.framing,
		controlData:   b.controlData,
		headerFields:  b.headerFields,
		content:       content,
		paddingLength: b.paddingLength,
	}, nil
}
