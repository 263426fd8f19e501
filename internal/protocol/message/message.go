package message

import (
	"errors"
	"strconv"

	"github.com/danmuck/agentwire/internal/protocol"
	"github.com/danmuck/agentwire/internal/protocol/key"
	"github.com/danmuck/agentwire/internal/protocol/signature"
)

var (
	ErrNilKey        = errors.New("message: private key is nil")
	ErrNilConstraint = errors.New("message: constraint is nil")
)

// Message is implemented by every agent protocol message.
type Message interface {
	protocol.Marshaler
	Type() Type
	isMessage()
}

// Failure is the generic negative reply.
type Failure struct{}

// Success is the generic positive reply.
type Success struct{}

// RequestIdentities asks for the list of keys the agent holds.
type RequestIdentities struct{}

// IdentitiesAnswer lists identities in the order the agent reported them.
type IdentitiesAnswer struct {
	Identities []Identity
}

// SignRequest asks the agent to sign Data with the key whose public blob is
// PubkeyBlob. Flags carries algorithm hints such as signature.FlagRSASHA256.
type SignRequest struct {
	PubkeyBlob []byte
	Data       []byte
	Flags      uint32
}

// SignResponse carries an encoded signature.Signature. The blob is left
// opaque here; Signature performs the second decode.
type SignResponse struct {
	SignatureBlob []byte
}

type AddIdentity struct {
	Key     key.PrivateKey
	Comment string
}

type RemoveIdentity struct {
	PubkeyBlob []byte
}

type RemoveAllIdentities struct{}

type AddSmartcardKey struct {
	ReaderID string
	PIN      string
}

type RemoveSmartcardKey struct {
	ReaderID string
	PIN      string
}

type Lock struct {
	Passphrase string
}

type Unlock struct {
	Passphrase string
}

// AddIDConstrained is AddIdentity with usage constraints appended.
type AddIDConstrained struct {
	Key         key.PrivateKey
	Comment     string
	Constraints []Constraint
}

// Extension is a vendor request. Contents runs to the end of the message.
type Extension struct {
	ExtensionType string
	Contents      []byte
}

type ExtensionFailure struct{}

func (Failure) Type() Type             { return TypeFailure }
func (Success) Type() Type             { return TypeSuccess }
func (RequestIdentities) Type() Type   { return TypeRequestIdentities }
func (IdentitiesAnswer) Type() Type    { return TypeIdentitiesAnswer }
func (SignRequest) Type() Type         { return TypeSignRequest }
func (SignResponse) Type() Type        { return TypeSignResponse }
func (AddIdentity) Type() Type         { return TypeAddIdentity }
func (RemoveIdentity) Type() Type      { return TypeRemoveIdentity }
func (RemoveAllIdentities) Type() Type { return TypeRemoveAllIdentities }
func (AddSmartcardKey) Type() Type     { return TypeAddSmartcardKey }
func (RemoveSmartcardKey) Type() Type  { return TypeRemoveSmartcardKey }
func (Lock) Type() Type                { return TypeLock }
func (Unlock) Type() Type              { return TypeUnlock }
func (AddIDConstrained) Type() Type    { return TypeAddIDConstrained }
func (Extension) Type() Type           { return TypeExtension }
func (ExtensionFailure) Type() Type    { return TypeExtensionFailure }

func (Failure) isMessage()             {}
func (Success) isMessage()             {}
func (RequestIdentities) isMessage()   {}
func (IdentitiesAnswer) isMessage()    {}
func (SignRequest) isMessage()         {}
func (SignResponse) isMessage()        {}
func (AddIdentity) isMessage()         {}
func (RemoveIdentity) isMessage()      {}
func (RemoveAllIdentities) isMessage() {}
func (AddSmartcardKey) isMessage()     {}
func (RemoveSmartcardKey) isMessage()  {}
func (Lock) isMessage()                {}
func (Unlock) isMessage()              {}
func (AddIDConstrained) isMessage()    {}
func (Extension) isMessage()           {}
func (ExtensionFailure) isMessage()    {}

func (m Failure) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
}

func (m Success) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
}

func (m RequestIdentities) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
}

func (m IdentitiesAnswer) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteUint32(uint32(len(m.Identities)))
	for _, identity := range m.Identities {
		identity.EncodeWire(e)
	}
}

func (m SignRequest) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteBytes(m.PubkeyBlob)
	e.WriteBytes(m.Data)
	e.WriteUint32(m.Flags)
}

func (m SignResponse) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteBytes(m.SignatureBlob)
}

func (m AddIdentity) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	writeKey(e, m.Key)
	e.WriteString(m.Comment)
}

func (m RemoveIdentity) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteBytes(m.PubkeyBlob)
}

func (m RemoveAllIdentities) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
}

func (m AddSmartcardKey) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteString(m.ReaderID)
	e.WriteString(m.PIN)
}

func (m RemoveSmartcardKey) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteString(m.ReaderID)
	e.WriteString(m.PIN)
}

func (m Lock) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteString(m.Passphrase)
}

func (m Unlock) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteString(m.Passphrase)
}

func (m AddIDConstrained) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	writeKey(e, m.Key)
	e.WriteString(m.Comment)
	for _, c := range m.Constraints {
		if c == nil {
			e.Fail(ErrNilConstraint)
			return
		}
		c.EncodeWire(e)
	}
}

func (m Extension) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
	e.WriteString(m.ExtensionType)
	e.WriteRaw(m.Contents)
}

func (m ExtensionFailure) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(m.Type()))
}

func writeKey(e *protocol.Encoder, k key.PrivateKey) {
	if k == nil {
		e.Fail(ErrNilKey)
		return
	}
	k.EncodeWire(e)
}

// NewSignResponse encodes sig into a SignResponse.
func NewSignResponse(sig signature.Signature) (SignResponse, error) {
	blob, err := sig.Marshal()
	if err != nil {
		return SignResponse{}, err
	}
	return SignResponse{SignatureBlob: blob}, nil
}

// Signature decodes the nested signature blob.
func (m SignResponse) Signature() (signature.Signature, error) {
	return signature.Parse(m.SignatureBlob)
}

// PublicKey decodes the blob naming the signing key.
func (m SignRequest) PublicKey() (key.PublicKey, error) {
	return key.ParsePublicKey(m.PubkeyBlob)
}

// Marshal returns the wire form of m.
func Marshal(m Message) ([]byte, error) {
	return protocol.Encode(m)
}

// Parse decodes a complete message body.
func Parse(b []byte) (Message, error) {
	return protocol.Decode(b, Read)
}

// Read decodes one message. Messages whose last field runs to the end of
// the input (AddIDConstrained, Extension) consume everything left.
func Read(d *protocol.Decoder) (Message, error) {
	at := d.Offset()
	tag, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch Type(tag) {
	case TypeFailure:
		return Failure{}, nil
	case TypeSuccess:
		return Success{}, nil
	case TypeRequestIdentities:
		return RequestIdentities{}, nil
	case TypeIdentitiesAnswer:
		return readIdentitiesAnswer(d)
	case TypeSignRequest:
		return readSignRequest(d)
	case TypeSignResponse:
		blob, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		return SignResponse{SignatureBlob: blob}, nil
	case TypeAddIdentity:
		k, err := key.ReadPrivateKey(d)
		if err != nil {
			return nil, err
		}
		comment, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return AddIdentity{Key: k, Comment: comment}, nil
	case TypeRemoveIdentity:
		blob, err := d.ReadBytes()
		if err != nil {
			return nil, err
		}
		return RemoveIdentity{PubkeyBlob: blob}, nil
	case TypeRemoveAllIdentities:
		return RemoveAllIdentities{}, nil
	case TypeAddSmartcardKey:
		readerID, pin, err := readSmartcard(d)
		if err != nil {
			return nil, err
		}
		return AddSmartcardKey{ReaderID: readerID, PIN: pin}, nil
	case TypeRemoveSmartcardKey:
		readerID, pin, err := readSmartcard(d)
		if err != nil {
			return nil, err
		}
		return RemoveSmartcardKey{ReaderID: readerID, PIN: pin}, nil
	case TypeLock:
		passphrase, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return Lock{Passphrase: passphrase}, nil
	case TypeUnlock:
		passphrase, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return Unlock{Passphrase: passphrase}, nil
	case TypeAddIDConstrained:
		return readAddIDConstrained(d)
	case TypeExtension:
		name, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return Extension{ExtensionType: name, Contents: d.ReadRest()}, nil
	case TypeExtensionFailure:
		return ExtensionFailure{}, nil
	default:
		return nil, d.InvalidTag(at, "message", strconv.Itoa(int(tag)))
	}
}

func readIdentitiesAnswer(d *protocol.Decoder) (Message, error) {
	at := d.Offset()
	count, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	// each identity needs at least minIdentitySize bytes, so a larger count
	// cannot be satisfied and is rejected before allocating
	if uint64(count) > uint64(d.Remaining()/minIdentitySize) {
		return nil, d.Fail("read identity count", at, protocol.ErrTruncated)
	}
	identities := make([]Identity, 0, count)
	for i := uint32(0); i < count; i++ {
		identity, err := ReadIdentity(d)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return IdentitiesAnswer{Identities: identities}, nil
}

func readSignRequest(d *protocol.Decoder) (Message, error) {
	blob, err := d.ReadBytes()
	if err != nil {
		return nil, err
	}
	data, err := d.ReadBytes()
	if err != nil {
		return nil, err
	}
	flags, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	return SignRequest{PubkeyBlob: blob, Data: data, Flags: flags}, nil
}

func readSmartcard(d *protocol.Decoder) (string, string, error) {
	readerID, err := d.ReadString()
	if err != nil {
		return "", "", err
	}
	pin, err := d.ReadString()
	if err != nil {
		return "", "", err
	}
	return readerID, pin, nil
}

func readAddIDConstrained(d *protocol.Decoder) (Message, error) {
	k, err := key.ReadPrivateKey(d)
	if err != nil {
		return nil, err
	}
	comment, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	constraints := make([]Constraint, 0, 2)
	for d.Remaining() > 0 {
		c, err := ReadConstraint(d)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return AddIDConstrained{Key: k, Comment: comment, Constraints: constraints}, nil
}
