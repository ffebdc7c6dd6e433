package buffer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/netfabric/intsim/internal/core"
)

func TestWriterLayout(t *testing.T) {
	buf := make([]byte, 15)
	w := NewWriter(buf)
	w.WriteU8(0xAB)
	w.WriteU16(0x1234)
	w.WriteU32(0xDEADBEEF)
	w.WriteU64(0x0102030405060708)

	if w.Pos() != 15 {
		t.Fatalf("expected 15 bytes written, got %d", w.Pos())
	}

	// Little-endian throughout
	expected := []byte{
		0xAB,
		0x34, 0x12,
		0xEF, 0xBE, 0xAD, 0xDE,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}
	if !bytes.Equal(buf, expected) {
		t.Errorf("wire bytes mismatch:\n got %x\nwant %x", buf, expected)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	buf := make([]byte, 15)
	w := NewWriter(buf)
	w.WriteU8(7)
	w.WriteU16(65535)
	w.WriteU32(4000000000)
	w.WriteU64(1 << 60)

	r := NewReader(buf)
	if v := r.ReadU8(); v != 7 {
		t.Errorf("ReadU8: got %d, want 7", v)
	}
	if v := r.ReadU16(); v != 65535 {
		t.Errorf("ReadU16: got %d, want 65535", v)
	}
	if v := r.ReadU32(); v != 4000000000 {
		t.Errorf("ReadU32: got %d, want 4000000000", v)
	}
	if v := r.ReadU64(); v != 1<<60 {
		t.Errorf("ReadU64: got %d, want %d", v, uint64(1)<<60)
	}
	if r.Pos() != 15 {
		t.Errorf("expected 15 bytes consumed, got %d", r.Pos())
	}
	if err := r.Err(); err != nil {
		t.Errorf("unexpected reader error: %v", err)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	if v := r.ReadU32(); v != 0 {
		t.Errorf("truncated read should return 0, got %d", v)
	}
	if err := r.Err(); !errors.Is(err, core.ErrShortBuffer) {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
	// Position does not advance past the end
	if r.Pos() != 0 {
		t.Errorf("truncated read advanced position to %d", r.Pos())
	}
}
