// Package message defines the closed set of agent protocol messages.
//
// Every message is a one byte type tag followed by a fixed field sequence.
// Tag values are the SSH agent protocol numbers and are never reassigned.
// Unknown tags are a decode error; deciding whether that is fatal belongs
// to whoever owns the connection.
//
// Decoded slices are never nil. Byte fields, Identities and Constraints
// come back empty but allocated, so a value built with nil slices is equal
// to its decoded form only after normalizing nil to empty.
package message
