package key

import "strings"

// KeyType is the wire discriminant of a key variant.
type KeyType string

const (
	KeyTypeRSA       KeyType = "ssh-rsa"
	KeyTypeDSA       KeyType = "ssh-dss"
	KeyTypeEd25519   KeyType = "ssh-ed25519"
	KeyTypeECDSAP256 KeyType = "ecdsa-sha2-nistp256"
	KeyTypeECDSAP384 KeyType = "ecdsa-sha2-nistp384"
	KeyTypeECDSAP521 KeyType = "ecdsa-sha2-nistp521"
)

const ecdsaPrefix = "ecdsa-sha2-"

// Tags are append-only. Existing names and their field schemas never change.
var knownKeyTypes = map[KeyType]struct{}{
	KeyTypeRSA:       {},
	KeyTypeDSA:       {},
	KeyTypeEd25519:   {},
	KeyTypeECDSAP256: {},
	KeyTypeECDSAP384: {},
	KeyTypeECDSAP521: {},
}

func (t KeyType) Valid() bool {
	_, ok := knownKeyTypes[t]
	return ok
}

func (t KeyType) String() string {
	return string(t)
}

// IsECDSA reports whether t is one of the ecdsa-sha2-* names.
func (t KeyType) IsECDSA() bool {
	return t.Valid() && strings.HasPrefix(string(t), ecdsaPrefix)
}

// Curve returns the curve identifier embedded in an ECDSA key type name,
// e.g. "nistp256". It is empty for other key types.
func (t KeyType) Curve() string {
	if !t.IsECDSA() {
		return ""
	}
	return strings.TrimPrefix(string(t), ecdsaPrefix)
}

// ECDSAKeyType returns the key type name for a curve identifier.
func ECDSAKeyType(curve string) KeyType {
	return KeyType(ecdsaPrefix + curve)
}
