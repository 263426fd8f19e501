// Package key models public and private key material as tagged variants.
//
// Each variant is identified on the wire by its SSH key type name, followed
// by the fields that name implies in a fixed order. Field values are opaque
// big-endian byte strings; no arithmetic validation happens here.
//
// The type name is itself a length-prefixed string, so input too short to
// hold the name fails with protocol.ErrTruncated before the name can be
// compared. Only a complete, unknown name yields protocol.ErrInvalidTag.
package key
