// Package sshcompat converts between the agent wire model and the types
// used by golang.org/x/crypto/ssh and the standard crypto packages.
//
// Big integers are written as SSH mpints: unsigned big-endian with a
// leading zero byte when the high bit is set.
package sshcompat

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/danmuck/agentwire/internal/protocol/key"
	"github.com/danmuck/agentwire/internal/protocol/signature"
	"golang.org/x/crypto/ssh"
)

var (
	ErrUnsupportedKey   = errors.New("sshcompat: unsupported private key type")
	ErrUnsupportedCurve = errors.New("sshcompat: unsupported elliptic curve")
)

// PublicKeyFromSSH re-parses the SSH wire form of pub into the key model.
func PublicKeyFromSSH(pub ssh.PublicKey) (key.PublicKey, error) {
	k, err := key.ParsePublicKey(pub.Marshal())
	if err != nil {
		return nil, fmt.Errorf("sshcompat: parse %s key: %w", pub.Type(), err)
	}
	return k, nil
}

// PublicKeyToSSH hands the encoded blob of k to ssh.ParsePublicKey.
func PublicKeyToSSH(k key.PublicKey) (ssh.PublicKey, error) {
	blob, err := key.Marshal(k)
	if err != nil {
		return nil, err
	}
	pub, err := ssh.ParsePublicKey(blob)
	if err != nil {
		return nil, fmt.Errorf("sshcompat: ssh rejected %s key: %w", k.Type(), err)
	}
	return pub, nil
}

// SignatureFromSSH drops sig.Rest, which only security-key signatures use.
func SignatureFromSSH(sig *ssh.Signature) signature.Signature {
	return signature.Signature{Algorithm: sig.Format, Blob: sig.Blob}
}

func SignatureToSSH(sig signature.Signature) *ssh.Signature {
	return &ssh.Signature{Format: sig.Algorithm, Blob: sig.Blob}
}

// PrivateKeyFromCrypto converts a standard library private key into the
// field layout an add-identity request carries.
func PrivateKeyFromCrypto(priv any) (key.PrivateKey, error) {
	switch k := priv.(type) {
	case *rsa.PrivateKey:
		if len(k.Primes) != 2 {
			return nil, fmt.Errorf("%w: rsa key with %d primes", ErrUnsupportedKey, len(k.Primes))
		}
		k.Precompute()
		return key.RSAPrivateKey{
			N:    Mpint(k.N),
			E:    Mpint(big.NewInt(int64(k.E))),
			D:    Mpint(k.D),
			Iqmp: Mpint(k.Precomputed.Qinv),
			P:    Mpint(k.Primes[0]),
			Q:    Mpint(k.Primes[1]),
		}, nil
	case *dsa.PrivateKey:
		return key.DSAPrivateKey{
			P: Mpint(k.P),
			Q: Mpint(k.Q),
			G: Mpint(k.G),
			Y: Mpint(k.Y),
			X: Mpint(k.X),
		}, nil
	case *ecdsa.PrivateKey:
		curve, err := curveName(k.Curve)
		if err != nil {
			return nil, err
		}
		pub, err := k.PublicKey.ECDH()
		if err != nil {
			return nil, fmt.Errorf("sshcompat: ecdsa public point: %w", err)
		}
		return key.ECDSAPrivateKey{
			Curve: curve,
			Q:     pub.Bytes(),
			D:     Mpint(k.D),
		}, nil
	case ed25519.PrivateKey:
		return ed25519Private(k), nil
	case *ed25519.PrivateKey:
		return ed25519Private(*k), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, priv)
	}
}

// Mpint returns the SSH mpint body of a non-negative integer.
func Mpint(x *big.Int) []byte {
	if x == nil || x.Sign() == 0 {
		return []byte{}
	}
	b := x.Bytes()
	if b[0]&0x80 != 0 {
		return append([]byte{0}, b...)
	}
	return b
}

func ed25519Private(k ed25519.PrivateKey) key.Ed25519PrivateKey {
	pub := k.Public().(ed25519.PublicKey)
	return key.Ed25519PrivateKey{
		Key:    append([]byte{}, pub...),
		Secret: append([]byte{}, k...),
	}
}

func curveName(c elliptic.Curve) (string, error) {
	switch c {
	case elliptic.P256():
		return key.KeyTypeECDSAP256.Curve(), nil
	case elliptic.P384():
		return key.KeyTypeECDSAP384.Curve(), nil
	case elliptic.P521():
		return key.KeyTypeECDSAP521.Curve(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCurve, c.Params().Name)
	}
}
