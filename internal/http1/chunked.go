package http1

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dechunk decodes a chunked transfer-encoded body.
//
// Format: hex-size CRLF data CRLF ... 0 CRLF [trailers] CRLF
// Chunk extensions after ';' and trailer fields are ignored.
func Dechunk(data []byte) ([]byte, error) {
	var result []byte
	s := &scanner{data: data}

	for {
		sizeLine, err := s.next()
		if err != nil {
			return nil, errors.Wrap(err, "chunked encoding: reading chunk size")
		}

		if semi := strings.IndexByte(sizeLine, ';'); semi >= 0 {
			sizeLine = sizeLine[:semi]
		}
		sizeLine = strings.TrimSpace(sizeLine)

		size, err := strconv.ParseUint(sizeLine, 16, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "chunked encoding: invalid chunk size %q", sizeLine)
		}

		// size 0 = last chunk
		if size == 0 {
			break
		}

		rest := s.rest()
		if int(size) > len(rest) {
			return nil, errors.Wrapf(ErrMalformed, "chunked encoding: chunk data truncated (expected %d bytes, %d available)", size, len(rest))
		}
		result = append(result, rest[:size]...)
		s.pos += int(size)

		// CRLF after chunk data
		crlf, err := s.next()
		if err != nil {
			return nil, errors.Wrap(err, "chunked encoding: missing CRLF after chunk data")
		}
		if crlf != "" {
			return nil, errors.Wrapf(ErrMalformed, "chunked encoding: expected CRLF after chunk data, got %q", crlf)
		}
	}

	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}
