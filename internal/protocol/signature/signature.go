// Package signature models a signature as an algorithm name plus an opaque,
// algorithm-specific blob.
package signature

import "github.com/danmuck/agentwire/internal/protocol"

// Sign request flags understood by RSA keys.
const (
	FlagRSASHA256 uint32 = 0x02
	FlagRSASHA512 uint32 = 0x04
)

// Common algorithm names.
const (
	AlgorithmRSASHA1   = "ssh-rsa"
	AlgorithmRSASHA256 = "rsa-sha2-256"
	AlgorithmRSASHA512 = "rsa-sha2-512"
	AlgorithmEd25519   = "ssh-ed25519"
)

type Signature struct {
	Algorithm string
	Blob      []byte
}

func (s Signature) EncodeWire(e *protocol.Encoder) {
	e.WriteString(s.Algorithm)
	e.WriteBytes(s.Blob)
}

// Read decodes a signature at the decoder's position. Blob is not
// interpreted.
func Read(d *protocol.Decoder) (Signature, error) {
	algorithm, err := d.ReadString()
	if err != nil {
		return Signature{}, err
	}
	blob, err := d.ReadBytes()
	if err != nil {
		return Signature{}, err
	}
	return Signature{Algorithm: algorithm, Blob: blob}, nil
}

// Parse decodes a complete signature blob.
func Parse(b []byte) (Signature, error) {
	return protocol.Decode(b, Read)
}

// Marshal returns the wire blob of s.
func (s Signature) Marshal() ([]byte, error) {
	return protocol.Encode(s)
}

// AlgorithmForFlags returns the RSA signature algorithm selected by a sign
// request's flags. SHA-512 wins when both bits are set.
func AlgorithmForFlags(flags uint32) string {
	switch {
	case flags&FlagRSASHA512 != 0:
		return AlgorithmRSASHA512
	case flags&FlagRSASHA256 != 0:
		return AlgorithmRSASHA256
	default:
		return AlgorithmRSASHA1
	}
}
