package protocol

// Encoder accumulates wire fields in order. The first failure sticks and
// later writes are ignored, so callers check Err or Bytes once at the end.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an Encoder with capacity bytes preallocated.
func NewEncoder(capacity int) *Encoder {
	if capacity < 0 {
		capacity = 0
	}
	return &Encoder{buf: make([]byte, 0, capacity)}
}

// WriteUint8 appends a single tag byte.
func (e *Encoder) WriteUint8(v uint8) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, v)
}

// WriteUint32 appends v big-endian.
func (e *Encoder) WriteUint32(v uint32) {
	if e.err != nil {
		return
	}
	e.buf = AppendUint32(e.buf, v)
}

// WriteBytes appends v as a byte string.
func (e *Encoder) WriteBytes(v []byte) {
	if e.err != nil {
		return
	}
	e.buf, e.err = AppendBytes(e.buf, v)
}

// WriteString appends s as a UTF-8 text string.
func (e *Encoder) WriteString(s string) {
	if e.err != nil {
		return
	}
	e.buf, e.err = AppendString(e.buf, s)
}

// WriteRaw appends v with no length prefix. Only valid for a trailing field
// whose extent is the rest of the enclosing blob.
func (e *Encoder) WriteRaw(v []byte) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, v...)
}

// Fail records err unless an earlier error is already held.
func (e *Encoder) Fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// Len reports the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

func (e *Encoder) Err() error {
	return e.err
}

// Bytes returns the encoded buffer or the first write error.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}
