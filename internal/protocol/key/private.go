package key

import (
	"strconv"

	"github.com/danmuck/agentwire/internal/protocol"
)

// PrivateKey is the full key material carried by add-identity requests.
// Fields are laid out in the order the agent protocol defines for each
// key type, which is not always the public key order.
type PrivateKey interface {
	protocol.Marshaler
	Type() KeyType
	Public() PublicKey
	isPrivateKey()
}

type RSAPrivateKey struct {
	N    []byte
	E    []byte
	D    []byte
	Iqmp []byte
	P    []byte
	Q    []byte
}

func (RSAPrivateKey) Type() KeyType {
	return KeyTypeRSA
}

func (RSAPrivateKey) isPrivateKey() {}

func (k RSAPrivateKey) Public() PublicKey {
	return RSAPublicKey{E: k.E, N: k.N}
}

func (k RSAPrivateKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeRSA))
	e.WriteBytes(k.N)
	e.WriteBytes(k.E)
	e.WriteBytes(k.D)
	e.WriteBytes(k.Iqmp)
	e.WriteBytes(k.P)
	e.WriteBytes(k.Q)
}

type DSAPrivateKey struct {
	P []byte
	Q []byte
	G []byte
	Y []byte
	X []byte
}

func (DSAPrivateKey) Type() KeyType {
	return KeyTypeDSA
}

func (DSAPrivateKey) isPrivateKey() {}

func (k DSAPrivateKey) Public() PublicKey {
	return DSAPublicKey{P: k.P, Q: k.Q, G: k.G, Y: k.Y}
}

func (k DSAPrivateKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeDSA))
	e.WriteBytes(k.P)
	e.WriteBytes(k.Q)
	e.WriteBytes(k.G)
	e.WriteBytes(k.Y)
	e.WriteBytes(k.X)
}

type ECDSAPrivateKey struct {
	Curve string
	Q     []byte
	D     []byte
}

func (k ECDSAPrivateKey) Type() KeyType {
	return ECDSAKeyType(k.Curve)
}

func (ECDSAPrivateKey) isPrivateKey() {}

func (k ECDSAPrivateKey) Public() PublicKey {
	return ECDSAPublicKey{Curve: k.Curve, Q: k.Q}
}

func (k ECDSAPrivateKey) EncodeWire(e *protocol.Encoder) {
	writeECDSAHeader(e, k.Curve)
	e.WriteBytes(k.Q)
	e.WriteBytes(k.D)
}

// Ed25519PrivateKey carries the 32 byte public key and the 64 byte
// seed-and-public-key secret, as the agent protocol transmits them.
type Ed25519PrivateKey struct {
	Key    []byte
	Secret []byte
}

func (Ed25519PrivateKey) Type() KeyType {
	return KeyTypeEd25519
}

func (Ed25519PrivateKey) isPrivateKey() {}

func (k Ed25519PrivateKey) Public() PublicKey {
	return Ed25519PublicKey{Key: k.Key}
}

func (k Ed25519PrivateKey) EncodeWire(e *protocol.Encoder) {
	e.WriteString(string(KeyTypeEd25519))
	e.WriteBytes(k.Key)
	e.WriteBytes(k.Secret)
}

// ReadPrivateKey decodes one private key at the decoder's position.
func ReadPrivateKey(d *protocol.Decoder) (PrivateKey, error) {
	t, err := readKeyType(d)
	if err != nil {
		return nil, err
	}
	switch {
	case t == KeyTypeRSA:
		f, err := readByteStrings(d, 6)
		if err != nil {
			return nil, err
		}
		return RSAPrivateKey{N: f[0], E: f[1], D: f[2], Iqmp: f[3], P: f[4], Q: f[5]}, nil
	case t == KeyTypeDSA:
		f, err := readByteStrings(d, 5)
		if err != nil {
			return nil, err
		}
		return DSAPrivateKey{P: f[0], Q: f[1], G: f[2], Y: f[3], X: f[4]}, nil
	case t == KeyTypeEd25519:
		f, err := readByteStrings(d, 2)
		if err != nil {
			return nil, err
		}
		return Ed25519PrivateKey{Key: f[0], Secret: f[1]}, nil
	case t.IsECDSA():
		curve, err := readCurve(d, t)
		if err != nil {
			return nil, err
		}
		f, err := readByteStrings(d, 2)
		if err != nil {
			return nil, err
		}
		return ECDSAPrivateKey{Curve: curve, Q: f[0], D: f[1]}, nil
	}
	return nil, d.InvalidTag(d.Offset(), unionKeyType, strconv.Quote(string(t)))
}

// ParsePrivateKey decodes a complete private key blob.
func ParsePrivateKey(blob []byte) (PrivateKey, error) {
	return protocol.Decode(blob, ReadPrivateKey)
}
