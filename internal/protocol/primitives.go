package protocol

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

const (
	uint32Size = 4

	// MinByteStringSize is the wire size of an empty ByteString.
	MinByteStringSize = uint32Size
)

// AppendUint32 appends v to b in network byte order.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

// AppendBytes appends v as a length-prefixed byte string.
func AppendBytes(b []byte, v []byte) ([]byte, error) {
	if uint64(len(v)) > math.MaxUint32 {
		return b, ErrTooLarge
	}
	b = AppendUint32(b, uint32(len(v)))
	return append(b, v...), nil
}

// AppendString appends s as a length-prefixed UTF-8 string.
func AppendString(b []byte, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return b, ErrInvalidUTF8
	}
	if uint64(len(s)) > math.MaxUint32 {
		return b, ErrTooLarge
	}
	b = AppendUint32(b, uint32(len(s)))
	return append(b, s...), nil
}

// ReadUint32 reads a big-endian uint32 at off and returns the offset past it.
func ReadUint32(buf []byte, off int) (uint32, int, error) {
	if off < 0 || len(buf)-off < uint32Size {
		return 0, off, ErrTruncated
	}
	return binary.BigEndian.Uint32(buf[off : off+uint32Size]), off + uint32Size, nil
}

// ReadBytes reads a length-prefixed byte string at off. The declared length
// is checked against the remaining input before anything is allocated. The
// returned slice is a copy, never aliases buf and is non-nil even when
// empty.
func ReadBytes(buf []byte, off int) ([]byte, int, error) {
	n, next, err := ReadUint32(buf, off)
	if err != nil {
		return nil, off, err
	}
	if uint64(n) > uint64(len(buf)-next) {
		return nil, off, ErrTruncated
	}
	end := next + int(n)
	out := make([]byte, n)
	copy(out, buf[next:end])
	return out, end, nil
}

// ReadString reads a length-prefixed byte string at off and requires it to
// be valid UTF-8.
func ReadString(buf []byte, off int) (string, int, error) {
	n, next, err := ReadUint32(buf, off)
	if err != nil {
		return "", off, err
	}
	if uint64(n) > uint64(len(buf)-next) {
		return "", off, ErrTruncated
	}
	end := next + int(n)
	raw := buf[next:end]
	if !utf8.Valid(raw) {
		return "", off, ErrInvalidUTF8
	}
	return string(raw), end, nil
}
