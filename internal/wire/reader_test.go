package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestReader_ReadByte(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	for _, want := range []byte{0x01, 0x02} {
		got, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadByte() = %#x, want %#x", got, want)
		}
	}
	if r.HasRemaining() {
		t.Error("HasRemaining() = true after reading all bytes")
	}
	if _, err := r.ReadByte(); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadByte() at end error = %v, want ErrTruncated", err)
	}
}

func TestReader_ReadVarint(t *testing.T) {
	r := NewReader([]byte{0x33, 0x58, 0x58, 0x94, 0x94, 0x94, 0x94})
	for _, want := range []uint64{51, 6232, 345281684} {
		got, err := r.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadVarint() = %d, want %d", got, want)
		}
	}
	if r.Offset() != 7 {
		t.Errorf("Offset() = %d, want 7", r.Offset())
	}
}

func TestReader_ReadVarint_Truncated(t *testing.T) {
	r := NewReader([]byte{0x94, 0x94})
	_, err := r.ReadVarint()
	var te *TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("ReadVarint() error = %v, want *TruncatedError", err)
	}
	if te.Need != 4 || te.Have != 2 || te.Offset != 0 {
		t.Errorf("TruncatedError = %+v, want Need=4 Have=2 Offset=0", te)
	}
	// A failed read leaves the cursor where it was.
	if r.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", r.Remaining())
	}
}

func TestReader_ReadExactly(t *testing.T) {
	data := []byte("hello world")
	r := NewReader(data)

	got, err := r.ReadExactly(5)
	if err != nil {
		t.Fatalf("ReadExactly() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("ReadExactly() = %q, want %q", got, "hello")
	}

	if _, err := r.ReadExactly(100); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadExactly(100) error = %v, want ErrTruncated", err)
	}

	empty, err := r.ReadExactly(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("ReadExactly(0) = (%q, %v), want empty", empty, err)
	}

	if rest := r.Rest(); string(rest) != " world" {
		t.Errorf("Rest() = %q, want %q", rest, " world")
	}
	if r.HasRemaining() {
		t.Error("HasRemaining() = true after Rest()")
	}
}

func TestReader_ReadExactly_NoCopy(t *testing.T) {
	data := []byte("abc")
	r := NewReader(data)
	got, _ := r.ReadExactly(3)
	data[0] = 'x'
	if got[0] != 'x' {
		t.Error("ReadExactly() copied the buffer")
	}
}

func TestReader_ReadKnownLengthBlock(t *testing.T) {
	r := NewReader([]byte{0x00, 0x03, 'a', 'b', 'c', 'z'})
	if _, err := r.ReadByte(); err != nil {
		t.Fatal(err)
	}

	sub, err := r.ReadKnownLengthBlock()
	if err != nil {
		t.Fatalf("ReadKnownLengthBlock() error = %v", err)
	}
	if sub.Remaining() != 3 {
		t.Errorf("sub.Remaining() = %d, want 3", sub.Remaining())
	}
	if sub.Offset() != 2 {
		t.Errorf("sub.Offset() = %d, want 2", sub.Offset())
	}
	if got := sub.Rest(); !bytes.Equal(got, []byte("abc")) {
		t.Errorf("sub.Rest() = %q, want %q", got, "abc")
	}

	// Parent advanced past the block.
	c, err := r.ReadByte()
	if err != nil || c != 'z' {
		t.Errorf("parent ReadByte() = (%q, %v), want 'z'", c, err)
	}
}

func TestReader_ReadKnownLengthBlock_Truncated(t *testing.T) {
	// Block declares 10 bytes but only 9 follow.
	data := append([]byte{0x0a}, bytes.Repeat([]byte{'x'}, 9)...)
	r := NewReader(data)
	_, err := r.ReadKnownLengthBlock()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadKnownLengthBlock() error = %v, want ErrTruncated", err)
	}
}

func TestReader_NestedOffsets(t *testing.T) {
	// outer block at 1, inner block at 3.
	r := NewReader([]byte{0xff, 0x04, 0x02, 'h', 'i', 0x00})
	r.ReadByte()
	outer, err := r.ReadKnownLengthBlock()
	if err != nil {
		t.Fatal(err)
	}
	inner, err := outer.ReadKnownLengthBlock()
	if err != nil {
		t.Fatal(err)
	}
	if inner.Offset() != 3 {
		t.Errorf("inner.Offset() = %d, want 3", inner.Offset())
	}
	_, err = inner.ReadExactly(3)
	var te *TruncatedError
	if !errors.As(err, &te) || te.Offset != 3 {
		t.Errorf("inner.ReadExactly(3) error = %v, want truncation at offset 3", err)
	}
}
