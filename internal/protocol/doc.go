// Package protocol owns the agent wire primitives and the blob entry points.
//
// Ownership boundary:
// - big-endian integer and length-prefixed string primitives
// - decode error taxonomy
// - Encode/Decode facade shared by keys, signatures and messages
//
// Key, signature and message shapes live in the key, signature and message
// subpackages. Transport framing is the caller's concern.
package protocol
