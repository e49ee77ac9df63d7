package varint

import (
	"bytes"
	"errors"
	"testing"
)

func TestParse_Vectors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  uint64
		n     int
	}{
		{"one byte", []byte{0x33}, 51, 1},
		{"two bytes", []byte{0x58, 0x58}, 6232, 2},
		{"four bytes", []byte{0x94, 0x94, 0x94, 0x94}, 345281684, 4},
		{"eight bytes", []byte{0xc2, 0x19, 0x7c, 0x5e, 0xff, 0x14, 0xe8, 0x8c}, 151288809941952652, 8},
		{"zero", []byte{0x00}, 0, 1},
		{"trailing data ignored", []byte{0x25, 0xff}, 37, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %d, want %d", got, tt.want)
			}
			if n != tt.n {
				t.Errorf("Parse() consumed %d bytes, want %d", n, tt.n)
			}
		})
	}
}

func TestParse_NonMinimal(t *testing.T) {
	// 37 encoded in two bytes (RFC 9000 A.1 example).
	got, n, err := Parse([]byte{0x40, 0x25})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != 37 || n != 2 {
		t.Errorf("Parse() = (%d, %d), want (37, 2)", got, n)
	}

	// Minimal re-encoding is shorter.
	enc, err := Encode(got)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(enc, []byte{0x25}) {
		t.Errorf("Encode(37) = %x, want 25", enc)
	}
}

func TestParse_ShortBuffer(t *testing.T) {
	inputs := [][]byte{
		nil,
		{0x40},
		{0x80, 0x00, 0x00},
		{0xc0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	}
	for _, in := range inputs {
		_, _, err := Parse(in)
		if !errors.Is(err, ErrShortBuffer) {
			t.Errorf("Parse(%x) error = %v, want ErrShortBuffer", in, err)
		}
	}
}

func TestAppend_Minimal(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{51, []byte{0x33}},
		{63, []byte{0x3f}},
		{64, []byte{0x40, 0x40}},
		{404, []byte{0x41, 0x94}},
		{6232, []byte{0x58, 0x58}},
		{16383, []byte{0x7f, 0xff}},
		{16384, []byte{0x80, 0x00, 0x40, 0x00}},
		{345281684, []byte{0x94, 0x94, 0x94, 0x94}},
		{1<<30 - 1, []byte{0xbf, 0xff, 0xff, 0xff}},
		{1 << 30, []byte{0xc0, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00}},
		{MaxValue, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}

	for _, tt := range tests {
		got, err := Append(nil, tt.v)
		if err != nil {
			t.Fatalf("Append(%d) error = %v", tt.v, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Append(%d) = %x, want %x", tt.v, got, tt.want)
		}
		if Len(tt.v) != len(tt.want) {
			t.Errorf("Len(%d) = %d, want %d", tt.v, Len(tt.v), len(tt.want))
		}
	}
}

func TestAppend_OutOfRange(t *testing.T) {
	prefix := []byte{0xaa}
	got, err := Append(prefix, MaxValue+1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Append() error = %v, want ErrOutOfRange", err)
	}
	if !bytes.Equal(got, prefix) {
		t.Errorf("Append() modified buffer on error: %x", got)
	}
	if Len(MaxValue+1) != 0 {
		t.Errorf("Len(MaxValue+1) = %d, want 0", Len(MaxValue+1))
	}
}

// TestRoundTrip_Minimal checks encode(decode(b)) == b for minimal encodings.
func TestRoundTrip_Minimal(t *testing.T) {
	values := []uint64{0, 1, 62, 63, 64, 255, 16383, 16384, 1<<30 - 1, 1 << 30, 1 << 40, MaxValue}
	for _, v := range values {
		enc, err := Encode(v)
		if err != nil {
			t.Fatalf("Encode(%d) error = %v", v, err)
		}
		got, n, err := Parse(enc)
		if err != nil {
			t.Fatalf("Parse(%x) error = %v", enc, err)
		}
		if got != v || n != len(enc) {
			t.Errorf("Parse(Encode(%d)) = (%d, %d)", v, got, n)
		}
		again, _ := Encode(got)
		if !bytes.Equal(again, enc) {
			t.Errorf("Encode(Parse(%x)) = %x", enc, again)
		}
	}
}

func TestPrefixLen(t *testing.T) {
	tests := map[byte]int{0x00: 1, 0x3f: 1, 0x40: 2, 0x7f: 2, 0x80: 4, 0xbf: 4, 0xc0: 8, 0xff: 8}
	for b, want := range tests {
		if got := PrefixLen(b); got != want {
			t.Errorf("PrefixLen(%#x) = %d, want %d", b, got, want)
		}
	}
}
