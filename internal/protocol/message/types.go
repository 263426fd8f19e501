package message

import "fmt"

// Type is the wire tag of a message.
type Type uint8

const (
	TypeFailure             Type = 5
	TypeSuccess             Type = 6
	TypeRequestIdentities   Type = 11
	TypeIdentitiesAnswer    Type = 12
	TypeSignRequest         Type = 13
	TypeSignResponse        Type = 14
	TypeAddIdentity         Type = 17
	TypeRemoveIdentity      Type = 18
	TypeRemoveAllIdentities Type = 19
	TypeAddSmartcardKey     Type = 20
	TypeRemoveSmartcardKey  Type = 21
	TypeLock                Type = 22
	TypeUnlock              Type = 23
	TypeAddIDConstrained    Type = 25
	TypeExtension           Type = 27
	TypeExtensionFailure    Type = 28
)

var typeNames = map[Type]string{
	TypeFailure:             "failure",
	TypeSuccess:             "success",
	TypeRequestIdentities:   "request_identities",
	TypeIdentitiesAnswer:    "identities_answer",
	TypeSignRequest:         "sign_request",
	TypeSignResponse:        "sign_response",
	TypeAddIdentity:         "add_identity",
	TypeRemoveIdentity:      "remove_identity",
	TypeRemoveAllIdentities: "remove_all_identities",
	TypeAddSmartcardKey:     "add_smartcard_key",
	TypeRemoveSmartcardKey:  "remove_smartcard_key",
	TypeLock:                "lock",
	TypeUnlock:              "unlock",
	TypeAddIDConstrained:    "add_id_constrained",
	TypeExtension:           "extension",
	TypeExtensionFailure:    "extension_failure",
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}
