// Package buffer provides the sequential byte cursor wire codecs write
// through. All multi-byte values are little-endian, matching the
// simulated wire format.
package buffer

import (
	"encoding/binary"

	"github.com/netfabric/intsim/internal/core"
)

// Writer advances through a caller-supplied slice. Callers reserve the
// exact wire size up front (see telemetry.Config.WireSize); writing past
// the end panics like any out-of-range slice access.
type Writer struct {
	buf []byte
	pos int
}

func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

func (w *Writer) WriteU8(v uint8) {
	w.buf[w.pos] = v
	w.pos++
}

func (w *Writer) WriteU16(v uint16) {
	binary.LittleEndian.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

func (w *Writer) WriteU32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

func (w *Writer) WriteU64(v uint64) {
	binary.LittleEndian.PutUint64(w.buf[w.pos:], v)
	w.pos += 8
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int {
	return w.pos
}

// Reader is the inverse cursor. Reads past the end of the slice return
// zero and latch a truncation error instead of failing mid-decode, so
// hot-path callers can check Err once after a full header.
type Reader struct {
	buf       []byte
	pos       int
	truncated bool
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) remaining(n int) bool {
	if r.pos+n > len(r.buf) {
		r.truncated = true
		return false
	}
	return true
}

func (r *Reader) ReadU8() uint8 {
	if !r.remaining(1) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

func (r *Reader) ReadU16() uint16 {
	if !r.remaining(2) {
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

func (r *Reader) ReadU32() uint32 {
	if !r.remaining(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *Reader) ReadU64() uint64 {
	if !r.remaining(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Err reports whether any read ran past the end of the buffer.
func (r *Reader) Err() error {
	if r.truncated {
		return core.ErrShortBuffer
	}
	return nil
}
