package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/danmuck/agentwire/internal/protocol/key"
	"github.com/danmuck/agentwire/internal/protocol/message"
	"github.com/danmuck/agentwire/internal/protocol/signature"
	"github.com/danmuck/agentwire/internal/protocol/sshcompat"
	"golang.org/x/crypto/ssh"
)

type field struct {
	Name  string
	Value string
}

func decodeKind(kind string, data []byte) ([]field, error) {
	switch kind {
	case kindMessage:
		m, err := message.Parse(data)
		if err != nil {
			return nil, err
		}
		return describeMessage(m), nil
	case kindPubkey:
		k, err := key.ParsePublicKey(data)
		if err != nil {
			return nil, err
		}
		return describePublicKey("", k), nil
	case kindPrivkey:
		k, err := key.ParsePrivateKey(data)
		if err != nil {
			return nil, err
		}
		return describePrivateKey("", k), nil
	case kindSignature:
		sig, err := signature.Parse(data)
		if err != nil {
			return nil, err
		}
		return describeSignature("", sig), nil
	case kindIdentity:
		id, err := message.ParseIdentity(data)
		if err != nil {
			return nil, err
		}
		return describeIdentity("", id), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func describeMessage(m message.Message) []field {
	fields := []field{{"type", m.Type().String()}}
	switch v := m.(type) {
	case message.IdentitiesAnswer:
		fields = append(fields, field{"count", strconv.Itoa(len(v.Identities))})
		for i, id := range v.Identities {
			fields = append(fields, describeIdentity(fmt.Sprintf("identities[%d].", i), id)...)
		}
	case message.SignRequest:
		fields = append(fields, describeBlob("key.", v.PubkeyBlob)...)
		fields = append(fields,
			field{"data", hex.EncodeToString(v.Data)},
			field{"flags", strconv.FormatUint(uint64(v.Flags), 10)},
		)
	case message.SignResponse:
		sig, err := v.Signature()
		if err != nil {
			fields = append(fields,
				field{"signature_blob", hex.EncodeToString(v.SignatureBlob)},
				field{"signature_error", err.Error()},
			)
			break
		}
		fields = append(fields, describeSignature("signature.", sig)...)
	case message.AddIdentity:
		fields = append(fields, describePrivateKey("key.", v.Key)...)
		fields = append(fields, field{"comment", v.Comment})
	case message.AddIDConstrained:
		fields = append(fields, describePrivateKey("key.", v.Key)...)
		fields = append(fields, field{"comment", v.Comment})
		for i, c := range v.Constraints {
			name := fmt.Sprintf("constraints[%d]", i)
			switch c := c.(type) {
			case message.LifetimeConstraint:
				fields = append(fields, field{name, fmt.Sprintf("lifetime %ds", c.Seconds)})
			case message.ConfirmConstraint:
				fields = append(fields, field{name, "confirm"})
			}
		}
	case message.RemoveIdentity:
		fields = append(fields, describeBlob("key.", v.PubkeyBlob)...)
	case message.AddSmartcardKey:
		fields = append(fields, field{"reader_id", v.ReaderID}, field{"pin", redacted(v.PIN)})
	case message.RemoveSmartcardKey:
		fields = append(fields, field{"reader_id", v.ReaderID}, field{"pin", redacted(v.PIN)})
	case message.Lock:
		fields = append(fields, field{"passphrase", redacted(v.Passphrase)})
	case message.Unlock:
		fields = append(fields, field{"passphrase", redacted(v.Passphrase)})
	case message.Extension:
		fields = append(fields,
			field{"extension_type", v.ExtensionType},
			field{"contents", hex.EncodeToString(v.Contents)},
		)
	}
	return fields
}

func describeIdentity(prefix string, id message.Identity) []field {
	fields := describeBlob(prefix+"key.", id.PubkeyBlob)
	return append(fields, field{prefix + "comment", id.Comment})
}

// describeBlob parses a nested public key blob on a best-effort basis; a
// blob that does not parse is shown raw along with the reason.
func describeBlob(prefix string, blob []byte) []field {
	k, err := key.ParsePublicKey(blob)
	if err != nil {
		return []field{
			{prefix + "blob", hex.EncodeToString(blob)},
			{prefix + "error", err.Error()},
		}
	}
	return describePublicKey(prefix, k)
}

func describePublicKey(prefix string, k key.PublicKey) []field {
	fields := []field{{prefix + "type", k.Type().String()}}
	if pub, err := sshcompat.PublicKeyToSSH(k); err == nil {
		fields = append(fields, field{prefix + "fingerprint", ssh.FingerprintSHA256(pub)})
	}
	return fields
}

func describePrivateKey(prefix string, k key.PrivateKey) []field {
	fields := describePublicKey(prefix, k.Public())
	return append(fields, field{prefix + "secret", "<redacted>"})
}

func describeSignature(prefix string, sig signature.Signature) []field {
	return []field{
		{prefix + "algorithm", sig.Algorithm},
		{prefix + "blob", hex.EncodeToString(sig.Blob)},
	}
}

func redacted(s string) string {
	if s == "" {
		return ""
	}
	return "<redacted>"
}
