package bhttp

import (
	"fmt"
	"sync"
)

// bufPool pools []byte slices for the encoder fast path.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// Marshal returns the Binary HTTP encoding of m, followed by
// m.PaddingLength() zero bytes.
//
// Marshal uses a sync.Pool buffer internally and returns an independent copy.
func Marshal(m *Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("bhttp: Marshal(nil)")
	}

	bp := bufPool.Get().(*[]byte)
	buf, err := m.AppendBinary((*bp)[:0])
	if err != nil {
		bufPool.Put(bp)
		return nil, err
	}

	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf[:0]
	bufPool.Put(bp)
	return result, nil
}
