// Package pin implements the PIN-keyed obfuscation layered over Shamir
// Secret Sharing: PowerOfTwoShift and its inverse, PowerOfTwoUnshift.
package pin

import (
	"errors"
	"fmt"

	"github.com/glottologist/seedmixer/seed"
)

// Modulus is the fixed modulus of the obfuscation cyclic group. It is 2049,
// not 2048, so that seed index 0 remains reserved as invalid; this choice
// is part of the wire format and must not vary between implementations.
const Modulus = 2049

// MinDigit and MaxDigit bound a single valid PIN digit.
const (
	MinDigit uint8 = 1
	MaxDigit uint8 = 9
)

// ErrEmpty is returned when a PIN has no digits.
var ErrEmpty = errors.New("pin: must have at least one digit")

// ErrDigitOutOfRange is returned when a PIN digit falls outside [1, 9].
var ErrDigitOutOfRange = errors.New("pin: digit out of range")

// PIN is an ordered, non-empty sequence of digits in [1, 9]. A PIN is never
// persisted by this package.
type PIN struct {
	digits []uint8
}

// New validates and constructs a PIN from the given digits.
func New(digits []uint8) (PIN, error) {
	if len(digits) == 0 {
		return PIN{}, ErrEmpty
	}
	for pos, d := range digits {
		if d < MinDigit || d > MaxDigit {
			return PIN{}, fmt.Errorf("%w: position %d has digit %d", ErrDigitOutOfRange, pos, d)
		}
	}
	copied := make([]uint8, len(digits))
	copy(copied, digits)
	return PIN{digits: copied}, nil
}

// Len returns the number of digits in the PIN.
func (p PIN) Len() int { return len(p.digits) }

// digitAt returns the PIN digit that governs seed position i, cycling
// through the PIN's digits as needed.
func (p PIN) digitAt(i int) uint8 {
	return p.digits[i%len(p.digits)]
}

// shiftFor returns 2^d mod Modulus for the PIN digit governing position i.
func (p PIN) shiftFor(i int) uint16 {
	d := p.digitAt(i)
	return uint16((1 << d) % Modulus)
}

// ObfuscatedSeed is the result of applying PowerOfTwoShift to a Seed. It has
// the same shape as a Seed, but its indices are only required to lie in
// [0, Modulus) rather than [1, 2048]; this relaxed range matters mid-pipeline,
// before Shamir reconstruction error could shift a value outside the
// narrower Seed range on the unmix side.
type ObfuscatedSeed struct {
	indices []uint16
}

// Len returns the number of indices in the obfuscated seed.
func (o ObfuscatedSeed) Len() int { return len(o.indices) }

// At returns the obfuscated index at the given position.
func (o ObfuscatedSeed) At(i int) uint16 { return o.indices[i] }

// Indices returns a copy of the obfuscated seed's indices.
func (o ObfuscatedSeed) Indices() []uint16 {
	out := make([]uint16, len(o.indices))
	copy(out, o.indices)
	return out
}

// NewObfuscatedSeed constructs an ObfuscatedSeed directly from already
// reconstructed positions, as produced by Shamir reconstruction during
// unmix. Each value must fit in [0, Modulus); values here originate from
// big-integer reconstruction results narrowed to 16 bits by the caller.
func NewObfuscatedSeed(indices []uint16) ObfuscatedSeed {
	copied := make([]uint16, len(indices))
	copy(copied, indices)
	return ObfuscatedSeed{indices: copied}
}

// Shift applies PowerOfTwoShift to s using the given PIN, producing an
// ObfuscatedSeed of the same length:
//
//	shift = 2^PIN[i mod len(PIN)] mod Modulus
//	obf[i] = (seed[i] + shift) mod Modulus
func Shift(s seed.Seed, p PIN) ObfuscatedSeed {
	out := make([]uint16, s.Len())
	for i := 0; i < s.Len(); i++ {
		shift := p.shiftFor(i)
		out[i] = uint16((uint32(s.At(i)) + uint32(shift)) % Modulus)
	}
	return ObfuscatedSeed{indices: out}
}

// Unshift applies PowerOfTwoUnshift, the inverse of Shift, to o using the
// given PIN, and validates the result as a Seed. If the same PIN that
// produced o via Shift is supplied, this always succeeds and returns the
// original Seed exactly. A different PIN will generally still produce some
// Seed (obfuscation is not authenticated, see §9 of the design notes) unless
// the arithmetic happens to land on index 0, in which case Seed validation
// fails.
func Unshift(o ObfuscatedSeed, p PIN) (seed.Seed, error) {
	out := make([]uint16, o.Len())
	for i := 0; i < o.Len(); i++ {
		shift := uint32(p.shiftFor(i))
		v := (uint32(o.At(i)) + Modulus - shift%Modulus) % Modulus
		out[i] = uint16(v)
	}
	return seed.New(out)
}
