package sshcompat

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/danmuck/agentwire/internal/protocol/key"
	"golang.org/x/crypto/ssh"
)

func TestPublicKeyFromSSHMatchesWireBlob(t *testing.T) {
	edPub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519: %v", err)
	}
	ecPriv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate ecdsa: %v", err)
	}
	rsaPriv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa: %v", err)
	}

	for _, raw := range []any{edPub, &ecPriv.PublicKey, &rsaPriv.PublicKey} {
		sshPub, err := ssh.NewPublicKey(raw)
		if err != nil {
			t.Fatalf("ssh public key: %v", err)
		}
		k, err := PublicKeyFromSSH(sshPub)
		if err != nil {
			t.Fatalf("%s: from ssh: %v", sshPub.Type(), err)
		}
		if string(k.Type()) != sshPub.Type() {
			t.Fatalf("type mismatch: got=%s want=%s", k.Type(), sshPub.Type())
		}
		blob, err := key.Marshal(k)
		if err != nil {
			t.Fatalf("%s: marshal: %v", k.Type(), err)
		}
		if !bytes.Equal(blob, sshPub.Marshal()) {
			t.Fatalf("%s: blob differs from ssh encoding", k.Type())
		}
		back, err := PublicKeyToSSH(k)
		if err != nil {
			t.Fatalf("%s: to ssh: %v", k.Type(), err)
		}
		if !bytes.Equal(back.Marshal(), sshPub.Marshal()) {
			t.Fatalf("%s: ssh round-trip mismatch", k.Type())
		}
	}
}

func TestRSAPublicKeyFieldsAreMpints(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("ssh public key: %v", err)
	}
	k, err := PublicKeyFromSSH(sshPub)
	if err != nil {
		t.Fatalf("from ssh: %v", err)
	}
	rsaKey := k.(key.RSAPublicKey)
	if !bytes.Equal(rsaKey.E, []byte{1, 0, 1}) {
		t.Fatalf("unexpected exponent: %x", rsaKey.E)
	}
	// 2048-bit modulus has its top bit set, so the mpint gains a zero byte
	if len(rsaKey.N) != 257 || rsaKey.N[0] != 0 {
		t.Fatalf("unexpected modulus encoding: len=%d first=%x", len(rsaKey.N), rsaKey.N[0])
	}
}

func TestPublicKeyToSSHRejectsBadKey(t *testing.T) {
	_, err := PublicKeyToSSH(key.Ed25519PublicKey{Key: []byte{1, 2, 3}})
	if err == nil {
		t.Fatalf("expected ssh to reject a short ed25519 key")
	}
}

func TestMpint(t *testing.T) {
	cases := []struct {
		in   *big.Int
		want []byte
	}{
		{big.NewInt(0), []byte{}},
		{big.NewInt(0x7f), []byte{0x7f}},
		{big.NewInt(0x80), []byte{0x00, 0x80}},
		{big.NewInt(65537), []byte{1, 0, 1}},
	}
	for _, tc := range cases {
		if got := Mpint(tc.in); !bytes.Equal(got, tc.want) {
			t.Fatalf("Mpint(%s) = %x want %x", tc.in, got, tc.want)
		}
	}
}

func TestPrivateKeyFromCryptoPublicHalf(t *testing.T) {
	_, edPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519: %v", err)
	}
	ecPriv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatalf("generate ecdsa: %v", err)
	}

	for _, tc := range []struct {
		priv any
		pub  any
	}{
		{edPriv, edPriv.Public()},
		{ecPriv, &ecPriv.PublicKey},
	} {
		k, err := PrivateKeyFromCrypto(tc.priv)
		if err != nil {
			t.Fatalf("from crypto: %v", err)
		}
		sshPub, err := ssh.NewPublicKey(tc.pub)
		if err != nil {
			t.Fatalf("ssh public key: %v", err)
		}
		blob, err := key.Marshal(k.Public())
		if err != nil {
			t.Fatalf("marshal public half: %v", err)
		}
		if !bytes.Equal(blob, sshPub.Marshal()) {
			t.Fatalf("%s: public half differs from ssh encoding", k.Type())
		}
	}
}

func TestPrivateKeyFromCryptoUnsupported(t *testing.T) {
	if _, err := PrivateKeyFromCrypto("not a key"); err == nil {
		t.Fatalf("expected unsupported key error")
	}
}

func TestSignatureConversion(t *testing.T) {
	in := &ssh.Signature{Format: "rsa-sha2-512", Blob: []byte{1, 2, 3}}
	out := SignatureToSSH(SignatureFromSSH(in))
	if out.Format != in.Format || !bytes.Equal(out.Blob, in.Blob) {
		t.Fatalf("signature mismatch: got=%+v want=%+v", out, in)
	}
}
