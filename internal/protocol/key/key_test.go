package key

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/agentwire/internal/protocol"
)

func testRSAKey() RSAPublicKey {
	return RSAPublicKey{
		E: []byte{1, 0, 1},
		N: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
}

func TestRSAPublicKeyWireLayout(t *testing.T) {
	blob, err := Marshal(testRSAKey())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{
		0, 0, 0, 7, 's', 's', 'h', '-', 'r', 's', 'a',
		0, 0, 0, 3, 1, 0, 1,
		0, 0, 0, 10, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	}
	if !bytes.Equal(blob, want) {
		t.Fatalf("unexpected blob:\n got=%x\nwant=%x", blob, want)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	keys := []PublicKey{
		testRSAKey(),
		DSAPublicKey{P: []byte{7}, Q: []byte{5}, G: []byte{2}, Y: []byte{3}},
		ECDSAPublicKey{Curve: "nistp256", Q: append([]byte{4}, bytes.Repeat([]byte{0xab}, 64)...)},
		ECDSAPublicKey{Curve: "nistp521", Q: []byte{4, 1}},
		Ed25519PublicKey{Key: bytes.Repeat([]byte{0x11}, 32)},
		RSAPublicKey{E: []byte{}, N: []byte{}},
	}
	for _, in := range keys {
		blob, err := Marshal(in)
		if err != nil {
			t.Fatalf("%s: marshal: %v", in.Type(), err)
		}
		out, err := ParsePublicKey(blob)
		if err != nil {
			t.Fatalf("%s: parse: %v", in.Type(), err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Fatalf("%s: round-trip mismatch: got=%+v want=%+v", in.Type(), out, in)
		}
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	keys := []PrivateKey{
		RSAPrivateKey{N: []byte{9}, E: []byte{1, 0, 1}, D: []byte{3}, Iqmp: []byte{4}, P: []byte{5}, Q: []byte{6}},
		DSAPrivateKey{P: []byte{1}, Q: []byte{2}, G: []byte{3}, Y: []byte{4}, X: []byte{5}},
		ECDSAPrivateKey{Curve: "nistp384", Q: []byte{4, 9, 9}, D: []byte{1}},
		Ed25519PrivateKey{Key: bytes.Repeat([]byte{1}, 32), Secret: bytes.Repeat([]byte{2}, 64)},
	}
	for _, in := range keys {
		blob, err := Marshal(in)
		if err != nil {
			t.Fatalf("%s: marshal: %v", in.Type(), err)
		}
		out, err := ParsePrivateKey(blob)
		if err != nil {
			t.Fatalf("%s: parse: %v", in.Type(), err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Fatalf("%s: round-trip mismatch: got=%+v want=%+v", in.Type(), out, in)
		}
		if out.Public().Type() != in.Type() {
			t.Fatalf("%s: public type mismatch: %s", in.Type(), out.Public().Type())
		}
	}
}

func TestRSAPrivateKeyUsesAgentFieldOrder(t *testing.T) {
	priv := RSAPrivateKey{N: []byte{0xaa}, E: []byte{0xbb}, D: []byte{1}, Iqmp: []byte{2}, P: []byte{3}, Q: []byte{4}}
	blob, err := Marshal(priv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// type name, then n before e
	d := protocol.NewDecoder(blob)
	if _, err := d.ReadString(); err != nil {
		t.Fatalf("read type: %v", err)
	}
	first, err := d.ReadBytes()
	if err != nil {
		t.Fatalf("read n: %v", err)
	}
	if !bytes.Equal(first, []byte{0xaa}) {
		t.Fatalf("expected n first, got %x", first)
	}
	pub := priv.Public().(RSAPublicKey)
	if !bytes.Equal(pub.E, []byte{0xbb}) || !bytes.Equal(pub.N, []byte{0xaa}) {
		t.Fatalf("unexpected public half: %+v", pub)
	}
}

func TestParsePublicKeyUnknownType(t *testing.T) {
	blob, _ := protocol.AppendString(nil, "ssh-unknown")
	blob, _ = protocol.AppendBytes(blob, []byte{1})
	_, err := ParsePublicKey(blob)
	if !errors.Is(err, protocol.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
	var tagErr protocol.TagError
	if !errors.As(err, &tagErr) || tagErr.Tag != `"ssh-unknown"` {
		t.Fatalf("unexpected tag error: %v", err)
	}
}

func TestParsePublicKeyCurveMismatch(t *testing.T) {
	blob, _ := protocol.AppendString(nil, string(KeyTypeECDSAP256))
	blob, _ = protocol.AppendString(blob, "nistp384")
	blob, _ = protocol.AppendBytes(blob, []byte{4})
	_, err := ParsePublicKey(blob)
	if !errors.Is(err, protocol.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestParsePublicKeyShortNameIsTruncated(t *testing.T) {
	for _, blob := range [][]byte{{0x07}, {0, 0, 0, 7, 's', 's', 'h'}} {
		_, err := ParsePublicKey(blob)
		if !errors.Is(err, protocol.ErrTruncated) {
			t.Fatalf("blob=%x: expected ErrTruncated, got %v", blob, err)
		}
	}
}

func TestMarshalRejectsUnknownCurve(t *testing.T) {
	for _, k := range []protocol.Marshaler{
		ECDSAPublicKey{Curve: "nistp999", Q: []byte{4}},
		ECDSAPrivateKey{Curve: "", Q: []byte{4}, D: []byte{1}},
	} {
		b, err := Marshal(k)
		if !errors.Is(err, protocol.ErrInvalidTag) {
			t.Fatalf("%T: expected ErrInvalidTag, got %v", k, err)
		}
		if b != nil {
			t.Fatalf("%T: failed marshal returned bytes", k)
		}
	}
}

func TestParsePrivateKeyUnknownType(t *testing.T) {
	blob, _ := protocol.AppendString(nil, "ssh-rsa-cert-v01@openssh.com")
	_, err := ParsePrivateKey(blob)
	if !errors.Is(err, protocol.ErrInvalidTag) {
		t.Fatalf("expected ErrInvalidTag, got %v", err)
	}
}

func TestParsePublicKeyTrailingBytes(t *testing.T) {
	blob, err := Marshal(testRSAKey())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_, err = ParsePublicKey(append(blob, 0))
	if !errors.Is(err, protocol.ErrTrailingBytes) {
		t.Fatalf("expected ErrTrailingBytes, got %v", err)
	}
}

func TestParsePublicKeyTruncated(t *testing.T) {
	blob, err := Marshal(testRSAKey())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < len(blob); i++ {
		_, err := ParsePublicKey(blob[:i])
		if !errors.Is(err, protocol.ErrTruncated) {
			t.Fatalf("cut=%d: expected ErrTruncated, got %v", i, err)
		}
	}
}

func TestKeyTypeCurve(t *testing.T) {
	if KeyTypeECDSAP384.Curve() != "nistp384" {
		t.Fatalf("unexpected curve: %q", KeyTypeECDSAP384.Curve())
	}
	if KeyTypeRSA.Curve() != "" || KeyTypeRSA.IsECDSA() {
		t.Fatalf("rsa must not report a curve")
	}
	if ECDSAKeyType("nistp999").Valid() {
		t.Fatalf("unknown curve must not be a valid key type")
	}
}

func FuzzParsePublicKey(f *testing.F) {
	seed, _ := Marshal(testRSAKey())
	f.Add(seed)
	f.Add([]byte{0, 0, 0, 11})
	f.Fuzz(func(t *testing.T, data []byte) {
		k, err := ParsePublicKey(data)
		if err != nil {
			return
		}
		again, err := Marshal(k)
		if err != nil {
			t.Fatalf("re-marshal: %v", err)
		}
		if !bytes.Equal(again, data) {
			t.Fatalf("re-marshal mismatch: got=%x want=%x", again, data)
		}
	})
}
