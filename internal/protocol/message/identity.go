package message

import (
	"github.com/danmuck/agentwire/internal/protocol"
	"github.com/danmuck/agentwire/internal/protocol/key"
)

// minIdentitySize is the wire size of an identity with an empty blob and
// an empty comment.
const minIdentitySize = 2 * protocol.MinByteStringSize

// Identity is a listed key. PubkeyBlob is kept as raw bytes and is only
// parsed when PublicKey is called.
type Identity struct {
	PubkeyBlob []byte
	Comment    string
}

func (i Identity) EncodeWire(e *protocol.Encoder) {
	e.WriteBytes(i.PubkeyBlob)
	e.WriteString(i.Comment)
}

func (i Identity) PublicKey() (key.PublicKey, error) {
	return key.ParsePublicKey(i.PubkeyBlob)
}

func ReadIdentity(d *protocol.Decoder) (Identity, error) {
	blob, err := d.ReadBytes()
	if err != nil {
		return Identity{}, err
	}
	comment, err := d.ReadString()
	if err != nil {
		return Identity{}, err
	}
	return Identity{PubkeyBlob: blob, Comment: comment}, nil
}

// ParseIdentity decodes a complete identity blob.
func ParseIdentity(b []byte) (Identity, error) {
	return protocol.Decode(b, ReadIdentity)
}
