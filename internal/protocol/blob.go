package protocol

import "github.com/rs/zerolog/log"

// Marshaler is implemented by every value with a wire encoding: keys,
// signatures, identities and messages.
type Marshaler interface {
	EncodeWire(e *Encoder)
}

// Reader decodes one value of type T from the decoder's current position.
type Reader[T any] func(d *Decoder) (T, error)

// Encode returns the wire form of v.
func Encode(v Marshaler) ([]byte, error) {
	e := NewEncoder(64)
	v.EncodeWire(e)
	return e.Bytes()
}

// Decode reads one T from data and requires the whole input to be consumed.
func Decode[T any](data []byte, read Reader[T]) (T, error) {
	d := NewDecoder(data)
	v, err := read(d)
	if err == nil {
		err = d.Finish()
	}
	if err != nil {
		log.Debug().Err(err).Int("len", len(data)).Msg("protocol: decode rejected")
		var zero T
		return zero, err
	}
	return v, nil
}
