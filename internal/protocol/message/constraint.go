package message

import (
	"strconv"

	"github.com/danmuck/agentwire/internal/protocol"
)

// ConstraintType is the tag of a key usage constraint.
type ConstraintType uint8

const (
	ConstraintLifetime ConstraintType = 1
	ConstraintConfirm  ConstraintType = 2
)

// Constraint is one of LifetimeConstraint or ConfirmConstraint.
type Constraint interface {
	protocol.Marshaler
	ConstraintType() ConstraintType
}

// LifetimeConstraint expires the key after Seconds.
type LifetimeConstraint struct {
	Seconds uint32
}

func (LifetimeConstraint) ConstraintType() ConstraintType {
	return ConstraintLifetime
}

func (c LifetimeConstraint) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(ConstraintLifetime))
	e.WriteUint32(c.Seconds)
}

// ConfirmConstraint requires user confirmation for each use of the key.
type ConfirmConstraint struct{}

func (ConfirmConstraint) ConstraintType() ConstraintType {
	return ConstraintConfirm
}

func (ConfirmConstraint) EncodeWire(e *protocol.Encoder) {
	e.WriteUint8(uint8(ConstraintConfirm))
}

func ReadConstraint(d *protocol.Decoder) (Constraint, error) {
	at := d.Offset()
	tag, err := d.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch ConstraintType(tag) {
	case ConstraintLifetime:
		seconds, err := d.ReadUint32()
		if err != nil {
			return nil, err
		}
		return LifetimeConstraint{Seconds: seconds}, nil
	case ConstraintConfirm:
		return ConfirmConstraint{}, nil
	default:
		return nil, d.InvalidTag(at, "constraint", strconv.Itoa(int(tag)))
	}
}
