package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/agentwire/internal/testutil/testlog"
)

type pair struct {
	Name string
	Data []byte
}

func (p pair) EncodeWire(e *Encoder) {
	e.WriteString(p.Name)
	e.WriteBytes(p.Data)
}

func readPair(d *Decoder) (pair, error) {
	name, err := d.ReadString()
	if err != nil {
		return pair{}, err
	}
	data, err := d.ReadBytes()
	if err != nil {
		return pair{}, err
	}
	return pair{Name: name, Data: data}, nil
}

func TestAppendUint32IsBigEndian(t *testing.T) {
	got := AppendUint32(nil, 0x01020304)
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected encoding: %x", got)
	}
	v, off, err := ReadUint32(got, 0)
	if err != nil {
		t.Fatalf("read u32: %v", err)
	}
	if v != 0x01020304 || off != 4 {
		t.Fatalf("unexpected read: v=%#x off=%d", v, off)
	}
}

func TestReadUint32Truncated(t *testing.T) {
	_, off, err := ReadUint32([]byte{0, 0, 1}, 0)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if off != 0 {
		t.Fatalf("offset advanced on failure: %d", off)
	}
}

func TestBytesRoundTripIncludingEmpty(t *testing.T) {
	for _, in := range [][]byte{{}, {0x00}, []byte("signature_blob")} {
		b, err := AppendBytes(nil, in)
		if err != nil {
			t.Fatalf("append bytes: %v", err)
		}
		if len(b) != 4+len(in) {
			t.Fatalf("unexpected encoded length %d for %d bytes", len(b), len(in))
		}
		out, off, err := ReadBytes(b, 0)
		if err != nil {
			t.Fatalf("read bytes: %v", err)
		}
		if off != len(b) || !bytes.Equal(out, in) {
			t.Fatalf("round-trip mismatch: got=%x want=%x", out, in)
		}
	}
}

func TestReadBytesDoesNotAliasInput(t *testing.T) {
	b, _ := AppendBytes(nil, []byte("abc"))
	out, _, err := ReadBytes(b, 0)
	if err != nil {
		t.Fatalf("read bytes: %v", err)
	}
	b[4] = 'z'
	if string(out) != "abc" {
		t.Fatalf("decoded bytes alias input: %q", out)
	}
}

func TestReadBytesHostileLength(t *testing.T) {
	// declares 4 GiB but carries two bytes
	buf := []byte{0xff, 0xff, 0xff, 0xff, 'a', 'b'}
	_, _, err := ReadBytes(buf, 0)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	buf := []byte{0, 0, 0, 2, 0xc3, 0x28}
	_, _, err := ReadString(buf, 0)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestAppendStringRejectsInvalidUTF8(t *testing.T) {
	_, err := AppendString(nil, "\xff")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testlog.Start(t)
	in := pair{Name: "comment_1", Data: []byte("key_blob_1")}
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(b, readPair)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Name != in.Name || !bytes.Equal(out.Data, in.Data) {
		t.Fatalf("round-trip mismatch: got=%+v want=%+v", out, in)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	testlog.Start(t)
	b, err := Encode(pair{Name: "", Data: []byte{}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = Decode(append(b, 0), readPair)
	if !errors.Is(err, ErrTrailingBytes) {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decodeErr.Offset != len(b) {
		t.Fatalf("unexpected offset: got=%d want=%d", decodeErr.Offset, len(b))
	}
}

func TestDecodeTruncatedAtEveryBoundary(t *testing.T) {
	testlog.Start(t)
	b, err := Encode(pair{Name: "name", Data: []byte("data")})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for i := 0; i < len(b); i++ {
		_, err := Decode(b[:i], readPair)
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("cut=%d: expected ErrTruncated, got %v", i, err)
		}
	}
}

func TestDecoderReportsFieldOffset(t *testing.T) {
	b, _ := AppendString(nil, "ok")
	b = append(b, 0, 0, 0, 9)
	d := NewDecoder(b)
	if _, err := d.ReadString(); err != nil {
		t.Fatalf("read string: %v", err)
	}
	_, err := d.ReadBytes()
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Offset != 6 || decodeErr.Op != "read bytes" {
		t.Fatalf("unexpected error detail: %+v", decodeErr)
	}
	if d.Offset() != 6 {
		t.Fatalf("decoder advanced past failed field: %d", d.Offset())
	}
}

func TestDecoderReadRest(t *testing.T) {
	d := NewDecoder([]byte{1, 2, 3})
	if _, err := d.ReadUint8(); err != nil {
		t.Fatalf("read u8: %v", err)
	}
	rest := d.ReadRest()
	if !bytes.Equal(rest, []byte{2, 3}) {
		t.Fatalf("unexpected rest: %x", rest)
	}
	if err := d.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
}

func TestEncoderErrorSticks(t *testing.T) {
	e := NewEncoder(0)
	e.WriteUint8(1)
	e.WriteString("\xc3\x28")
	e.WriteUint32(7)
	if _, err := e.Bytes(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if e.Len() != 1 {
		t.Fatalf("writes continued after error: len=%d", e.Len())
	}
}

func TestTagErrorIsInvalidTag(t *testing.T) {
	d := NewDecoder([]byte{0x7f})
	err := d.InvalidTag(0, "message", "127")
	if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	var tagErr TagError
	if !errors.As(err, &tagErr) || tagErr.Tag != "127" {
		t.Fatalf("expected TagError for 127, got %v", err)
	}
}
