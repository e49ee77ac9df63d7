package bhttp

import (
	"github.com/shapestone/shape-bhttp/internal/wire"
)

// Unmarshal decodes a known-length Binary HTTP message.
//
// The data is not retained: header values and content are copied out.
// Sections following the control data may be absent, in which case they
// decode as empty. Bytes after the content must be zero padding. The
// decoded message always has a padding length of 0.
//
// Errors are *DecodeError values wrapping ErrTruncated, ErrInvalidStatusCode,
// ErrUnsupportedFraming or ErrNonZeroPadding.
func Unmarshal(data []byte) (*Message, error) {
	r := wire.NewReader(data)

	b, err := r.ReadByte()
	if err != nil {
		return nil, truncatedError("framing indicator", err)
	}
	framing := FramingIndicator(b)

	var ctrl ControlData
	switch framing {
	case KnownLengthRequest:
		ctrl, err = readRequestControlData(r)
	case KnownLengthResponse:
		ctrl, err = readResponseControlData(r)
	default:
		return nil, newDecodeError(0, ErrUnsupportedFraming, "unsupported framing indicator %d (%s)", b, framing)
	}
	if err != nil {
		return nil, err
	}

	msg := &Message{framing: framing, controlData: ctrl}
	if !r.HasRemaining() {
		return msg, nil
	}
	if msg.headerFields, err = readFieldSection(r); err != nil {
		return nil, err
	}
	if !r.HasRemaining() {
		return msg, nil
	}
	if msg.content, err = readContent(r); err != nil {
		return nil, err
	}
	if err := checkPadding(r); err != nil {
		return nil, err
	}
	return msg, nil
}

func readContent(r *wire.Reader) ([]byte, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, truncatedError("content length", err)
	}
	b, err := r.ReadExactly(n)
	if err != nil {
		return nil, truncatedError("content", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	content := make([]byte, len(b))
	copy(content, b)
	return content, nil
}

// checkPadding consumes the rest of r, which must be all zeros.
// An empty trailer section (a single zero length byte) is indistinguishable
// from padding and is accepted.
func checkPadding(r *wire.Reader) error {
	start := r.Offset()
	for i, c := range r.Rest() {
		if c != 0 {
			return newDecodeError(start+i, ErrNonZeroPadding, "non-zero byte %#02x after content", c)
		}
	}
	return nil
}
