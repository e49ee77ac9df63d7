package bhttp

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-bhttp/internal/wire"
)

var (
	// ErrTruncated reports input that ends before a length-prefixed
	// structure, varint, or fixed-length read is complete.
	ErrTruncated = wire.ErrTruncated

	// ErrInvalidStatusCode reports an informative status code outside
	// [100, 199] or a final status code outside [200, 599].
	ErrInvalidStatusCode = errors.New("invalid status code")

	// ErrUnsupportedFraming reports a framing indicator other than the
	// known-length request (0) or response (1).
	ErrUnsupportedFraming = errors.New("unsupported framing indicator")

	// ErrNonZeroPadding reports non-zero bytes after the message content.
	ErrNonZeroPadding = errors.New("non-zero padding")

	// ErrMissingControlData reports a message without control data, such as
	// a zero Message or a builder that was never given any.
	ErrMissingControlData = errors.New("bhttp: missing control data")
)

// DecodeError describes a failure to decode a Binary HTTP message.
type DecodeError struct {
	Offset  int    // byte offset in the input where the error was detected
	Message string // human-readable description
	Err     error  // underlying sentinel, one of the Err* values
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("bhttp: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

func newDecodeError(offset int, err error, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Offset: offset, Message: fmt.Sprintf(format, args...), Err: err}
}

// truncatedError converts a reader failure into a DecodeError naming what was being read.
func truncatedError(what string, err error) error {
	var te *wire.TruncatedError
	if errors.As(err, &te) {
		return newDecodeError(te.Offset, ErrTruncated, "%s: need %d bytes, have %d", what, te.Need, te.Have)
	}
	return fmt.Errorf("bhttp: %s: %w", what, err)
}

func informativeStatusError(code int) error {
	return fmt.Errorf("bhttp: informative status code %d not in [%d, %d]: %w",
		code, minInformativeStatus, maxInformativeStatus, ErrInvalidStatusCode)
}

func finalStatusError(code int) error {
	return fmt.Errorf("bhttp: final status code %d not in [%d, %d]: %w",
		code, minFinalStatus, maxFinalStatus, ErrInvalidStatusCode)
}
