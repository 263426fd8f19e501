package protocol

// Decoder reads wire fields sequentially from an in-memory buffer. Every
// failure is reported as a *DecodeError carrying the offset of the field
// that could not be read.
type Decoder struct {
	buf []byte
	off int
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

func (d *Decoder) Offset() int {
	return d.off
}

func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// ReadUint8 reads a single tag byte.
func (d *Decoder) ReadUint8() (uint8, error) {
	if d.Remaining() < 1 {
		return 0, d.Fail("read u8", d.off, ErrTruncated)
	}
	v := d.buf[d.off]
	d.off++
	return v, nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	v, next, err := ReadUint32(d.buf, d.off)
	if err != nil {
		return 0, d.Fail("read u32", d.off, err)
	}
	d.off = next
	return v, nil
}

func (d *Decoder) ReadBytes() ([]byte, error) {
	v, next, err := ReadBytes(d.buf, d.off)
	if err != nil {
		return nil, d.Fail("read bytes", d.off, err)
	}
	d.off = next
	return v, nil
}

func (d *Decoder) ReadString() (string, error) {
	v, next, err := ReadString(d.buf, d.off)
	if err != nil {
		return "", d.Fail("read string", d.off, err)
	}
	d.off = next
	return v, nil
}

// ReadRest consumes and returns a copy of every remaining byte.
func (d *Decoder) ReadRest() []byte {
	out := make([]byte, d.Remaining())
	copy(out, d.buf[d.off:])
	d.off = len(d.buf)
	return out
}

// InvalidTag reports an unknown discriminant read at offset at.
func (d *Decoder) InvalidTag(at int, union, tag string) error {
	return d.Fail("read "+union+" tag", at, TagError{Union: union, Tag: tag})
}

// Finish fails with ErrTrailingBytes if any input is left unread.
func (d *Decoder) Finish() error {
	if d.Remaining() != 0 {
		return d.Fail("finish", d.off, ErrTrailingBytes)
	}
	return nil
}

// Fail wraps err with the operation and input offset it relates to.
func (d *Decoder) Fail(op string, at int, err error) error {
	return &DecodeError{Op: op, Offset: at, Err: err}
}
