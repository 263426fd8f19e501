package key

import (
	"strconv"

	"github.com/danmuck/agentwire/internal/protocol"
)

const unionKeyType = "key type"

// PublicKey is one of RSAPublicKey, DSAPublicKey, ECDSAPublicKey or
// Ed25519PublicKey.
type PublicKey interface {
	protocol.Marshaler
	Type() KeyType
	isPublicKey()
}

type RSAPublicKey struct {
	E []byte
	N []byte
}

func (RSAPublicKey) Type() KeyType {
	return KeyTypeRSA
}

func (RSAPublicKey) isPublicKey() {}

func (k RSAPublicKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeRSA))
	e.WriteBytes(k.E)
	e.WriteBytes(k.N)
}

type DSAPublicKey struct {
	P []byte
	Q []byte
	G []byte
	Y []byte
}

func (DSAPublicKey) Type() KeyType {
	return KeyTypeDSA
}

func (DSAPublicKey) isPublicKey() {}

func (k DSAPublicKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeDSA))
	e.WriteBytes(k.P)
	e.WriteBytes(k.Q)
	e.WriteBytes(k.G)
	e.WriteBytes(k.Y)
}

// ECDSAPublicKey holds an uncompressed curve point. Curve is the short
// identifier ("nistp256") and selects the key type name.
type ECDSAPublicKey struct {
	Curve string
	Q     []byte
}

func (k ECDSAPublicKey) Type() KeyType {
	return ECDSAKeyType(k.Curve)
}

func (ECDSAPublicKey) isPublicKey() {}

func (k ECDSAPublicKey) EncodeWire(e *protocol.Encoder) {
	writeECDSAHeader(e, k.Curve)
	e.WriteBytes(k.Q)
}

type Ed25519PublicKey struct {
	Key []byte
}

func (Ed25519PublicKey) Type() KeyType {
	return KeyTypeEd25519
}

func (Ed25519PublicKey) isPublicKey() {}

func (k Ed25519PublicKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeEd25519))
	e.WriteBytes(k.Key)
}

// ReadPublicKey decodes one public key at the decoder's position.
func ReadPublicKey(d *protocol.Decoder) (PublicKey, error) {
	t, err := readKeyType(d)
	if err != nil {
		return nil, err
	}
	switch {
	case t == KeyTypeRSA:
		f, err := readByteStrings(d, 2)
		if err != nil {
			return nil, err
		}
		return RSAPublicKey{E: f[0], N: f[1]}, nil
	case t == KeyTypeDSA:
		f, err := readByteStrings(d, 4)
		if err != nil {
			return nil, err
		}
		return DSAPublicKey{P: f[0], Q: f[1], G: f[2], Y: f[3]}, nil
	case t == KeyTypeEd25519:
		f, err := readByteStrings(d, 1)
		if err != nil {
			return nil, err
		}
		return Ed25519PublicKey{Key: f[0]}, nil
	case t.IsECDSA():
		curve, err := readCurve(d, t)
		if err != nil {
			return nil, err
		}
		f, err := readByteStrings(d, 1)
		if err != nil {
			return nil, err
		}
		return ECDSAPublicKey{Curve: curve, Q: f[0]}, nil
	}
	// readKeyType only returns known names
	return nil, d.InvalidTag(d.Offset(), unionKeyType, strconv.Quote(string(t)))
}

// ParsePublicKey decodes a complete public key blob.
func ParsePublicKey(blob []byte) (PublicKey, error) {
	return protocol.Decode(blob, ReadPublicKey)
}

// Marshal returns the wire blob of a public or private key.
func Marshal(k protocol.Marshaler) ([]byte, error) {
	return protocol.Encode(k)
}

// writeECDSAHeader writes the key type name and curve of an ECDSA key, or
// fails the encoder when the curve is not one the decoder accepts.
func writeECDSAHeader(e *protocol.Encoder, curve string) {
	t := ECDSAKeyType(curve)
	if !t.Valid() {
		e.Fail(protocol.TagError{Union: "ecdsa curve", Tag: strconv.Quote(curve)})
		return
	}
	e.WriteString(string(t))
	e.WriteString(curve)
}

func readKeyType(d *protocol.Decoder) (KeyType, error) {
	at := d.Offset()
	name, err := d.ReadString()
	if err != nil {
		return "", err
	}
	t := KeyType(name)
	if !t.Valid() {
		return "", d.InvalidTag(at, unionKeyType, strconv.Quote(name))
	}
	return t, nil
}

// readCurve reads the curve field of an ECDSA key and requires it to agree
// with the curve named by the key type.
func readCurve(d *protocol.Decoder, t KeyType) (string, error) {
	at := d.Offset()
	curve, err := d.ReadString()
	if err != nil {
		return "", err
	}
	if curve != t.Curve() {
		return "", d.InvalidTag(at, "ecdsa curve", strconv.Quote(curve))
	}
	return curve, nil
}

func readByteStrings(d *protocol.Decoder, n int) ([][]byte, error) {
	out := make([][]byte, n)
	for i := range out {
		v, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
