package telemetry

import (
	"math"
	"sync/atomic"
)

// Kind is the storage type of a Var.
type Kind uint8

const (
	KindFloat Kind = iota
	KindUint16
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindUint16:
		return "uint16"
	default:
		return "unknown"
	}
}

// Var is one telemetry field.
type Var struct {
	name string
	kind Kind
	bits atomic.Uint32
}

func (v *Var) Name() string { return v.name }
func (v *Var) Kind() Kind   { return v.kind }

// SetFloat stores f. It is meant for KindFloat fields.
func (v *Var) SetFloat(f float32) {
	v.bits.Store(math.Float32bits(f))
}

// SetUint16 stores u. It is meant for KindUint16 fields.
func (v *Var) SetUint16(u uint16) {
	v.bits.Store(uint32(u))
}

// Float returns the stored value of a KindFloat field.
func (v *Var) Float() float32 {
	return math.Float32frombits(v.bits.Load())
}

// Uint16 returns the stored value of a KindUint16 field.
func (v *Var) Uint16() uint16 {
	return uint16(v.bits.Load())
}

// Value returns the field as float64 whatever its kind.
func (v *Var) Value() float64 {
	if v.kind == KindUint16 {
		return float64(v.Uint16())
	}
	return float64(v.Float())
}
