package shamir

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/renproject/surge"
)

// FnSizeBytes is the number of bytes used to serialise an Fn in binary form.
// The fixed prime is 512 bits long, so 128 bytes is always enough to hold
// any reduced element.
const FnSizeBytes = 128

// primeDecimal is the decimal form of the fixed modulus of the field that all
// Shamir arithmetic in this package is performed over. It is not the order of
// any elliptic curve group; it is a standalone 512-bit safe-ish prime chosen
// so that it
// comfortably exceeds the largest value ever placed in a share (a single
// BIP-39 word index, at most 2048).
//
// This value must never change: every share ever produced by this package is
// only meaningful relative to this exact modulus.
const primeDecimal = "7876392013106067884694803200456018364629049395434127864807249940946137609495271847985527744803990426633202611333011018935827714873253604323773749390637467"

// Prime is the parsed big.Int form of primeDecimal.
var Prime *big.Int

func init() {
	p, ok := new(big.Int).SetString(primeDecimal, 10)
	if !ok {
		panic("shamir: failed to parse fixed prime constant")
	}
	Prime = p
}

// Fn represents an element of the prime field Z/pZ for the fixed prime
// above. The zero value is the field element 0.
//
// NOTE: Fn is not safe for concurrent use; callers that share an Fn across
// goroutines must synchronise access themselves.
type Fn struct {
	v big.Int
}

// NewFnFromUint16 constructs a field element from a small unsigned integer,
// as used for seed-word indices and share indices.
func NewFnFromUint16(x uint16) Fn {
	var f Fn
	f.v.SetUint64(uint64(x))
	return f
}

// NewFnFromInt constructs a field element from an arbitrary big.Int,
// reducing it modulo Prime. The sign of x is respected: negative values are
// folded into the range [0, Prime).
func NewFnFromInt(x *big.Int) Fn {
	var f Fn
	f.v.Mod(x, Prime)
	if f.v.Sign() < 0 {
		f.v.Add(&f.v, Prime)
	}
	return f
}

// RandomFn returns a uniformly random element of the field, used to
// construct the non-constant coefficients of a sharing polynomial.
func RandomFn() Fn {
	v, err := rand.Int(rand.Reader, Prime)
	if err != nil {
		// crypto/rand.Int only fails if Prime is non-positive, which can
		// never happen for the fixed constant above.
		panic(fmt.Sprintf("shamir: failed to generate random field element: %v", err))
	}
	var f Fn
	f.v.Set(v)
	return f
}

// NewFnFromBytes constructs a field element from an unsigned big-endian
// byte string, reducing it modulo Prime.
func NewFnFromBytes(bs []byte) Fn {
	var f Fn
	f.v.SetBytes(bs)
	f.Normalize()
	return f
}

// NewFnFromLittleEndianBytes constructs a field element from an unsigned
// little-endian byte string, reducing it modulo Prime. This matches the
// magnitude encoding the reference implementation uses for a share's
// y-coordinate prior to ECIES encryption (Rust's `share.to_bytes_le()`),
// and must be used instead of NewFnFromBytes wherever interoperability with
// those artifacts is required.
func NewFnFromLittleEndianBytes(bs []byte) Fn {
	reversed := make([]byte, len(bs))
	for i, b := range bs {
		reversed[len(bs)-1-i] = b
	}
	return NewFnFromBytes(reversed)
}

// LittleEndianBytes returns the unsigned little-endian magnitude encoding
// of the field element, the counterpart to NewFnFromLittleEndianBytes.
func (f *Fn) LittleEndianBytes() []byte {
	be := f.v.Bytes()
	out := make([]byte, len(be))
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}

// Int returns a copy of the field element as a big.Int in [0, Prime).
func (f *Fn) Int() *big.Int {
	return new(big.Int).Set(&f.v)
}

// Eq returns true if the two field elements are equal.
func (f *Fn) Eq(other *Fn) bool {
	return f.v.Cmp(&other.v) == 0
}

// Set copies other into the caller.
func (f *Fn) Set(other *Fn) {
	f.v.Set(&other.v)
}

// Normalize reduces the field element into the canonical range [0, Prime).
// Every arithmetic method below already leaves its result normalized; this
// is exposed for callers that construct an Fn via its zero value and a
// direct big.Int mutation.
func (f *Fn) Normalize() {
	f.v.Mod(&f.v, Prime)
	if f.v.Sign() < 0 {
		f.v.Add(&f.v, Prime)
	}
}

// Add computes a+b mod Prime and stores the result in the caller.
func (f *Fn) Add(a, b *Fn) {
	f.v.Add(&a.v, &b.v)
	f.Normalize()
}

// Neg computes -a mod Prime and stores the result in the caller.
func (f *Fn) Neg(a *Fn) {
	f.v.Neg(&a.v)
	f.Normalize()
}

// Sub computes a-b mod Prime and stores the result in the caller.
func (f *Fn) Sub(a, b *Fn) {
	f.v.Sub(&a.v, &b.v)
	f.Normalize()
}

// Mul computes a*b mod Prime and stores the result in the caller.
func (f *Fn) Mul(a, b *Fn) {
	f.v.Mul(&a.v, &b.v)
	f.Normalize()
}

// Inv computes the multiplicative inverse of a modulo Prime and stores the
// result in the caller, using Fermat's little theorem: a^(p-2) = a^-1 mod p
// for any prime p and any a not congruent to 0.
//
// Panics: if a is the zero element, the inverse does not exist and this
// function panics.
func (f *Fn) Inv(a *Fn) {
	if a.v.Sign() == 0 {
		panic("shamir: cannot invert the zero field element")
	}
	exp := new(big.Int).Sub(Prime, big.NewInt(2))
	f.v.Exp(&a.v, exp, Prime)
}

// SizeHint implements the surge.SizeHinter interface.
func (f *Fn) SizeHint() int { return FnSizeBytes }

// Marshal implements the surge.Marshaler interface. The element is written
// as a fixed-width big-endian byte string.
func (f *Fn) Marshal(w io.Writer, m int) (int, error) {
	if m < FnSizeBytes {
		return m, surge.ErrMaxBytesExceeded
	}
	var bs [FnSizeBytes]byte
	f.v.FillBytes(bs[:])
	n, err := w.Write(bs[:])
	return m - n, err
}

// Unmarshal implements the surge.Unmarshaler interface.
func (f *Fn) Unmarshal(r io.Reader, m int) (int, error) {
	if m < FnSizeBytes {
		return m, surge.ErrMaxBytesExceeded
	}
	var bs [FnSizeBytes]byte
	n, err := io.ReadFull(r, bs[:])
	m -= n
	if err != nil {
		return m, err
	}
	f.v.SetBytes(bs[:])
	return m, nil
}

// bigIntLimbs returns the magnitude of x as base-2^32 limbs, least
// significant limb first, matching the wire layout produced by Rust's
// num-bigint crate.
func bigIntLimbs(x *big.Int) []uint32 {
	abs := new(big.Int).Abs(x)
	if abs.Sign() == 0 {
		return []uint32{}
	}
	words := abs.Bits()
	limbs := make([]uint32, 0, len(words)*2)
	mask := big.NewInt(0xFFFFFFFF)
	tmp := new(big.Int).Set(abs)
	for tmp.Sign() != 0 {
		limb := new(big.Int).And(tmp, mask)
		limbs = append(limbs, uint32(limb.Uint64()))
		tmp.Rsh(tmp, 32)
	}
	return limbs
}

// bigIntFromLimbs reconstructs a signed big.Int from a sign and a slice of
// base-2^32 limbs, least significant first.
func bigIntFromLimbs(sign int, limbs []uint32) *big.Int {
	result := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		result.Lsh(result, 32)
		result.Or(result, big.NewInt(int64(limbs[i])))
	}
	if sign < 0 {
		result.Neg(result)
	}
	return result
}

// MarshalJSON implements json.Marshaler for Fn, encoding it as the two
// element [sign, [limbs]] array used by the reference share files. This
// mirrors the format produced by serializing a Rust num-bigint BigInt with
// serde: [sign, [limb0, limb1, ...]], sign in {-1, 0, 1}, limbs base-2^32
// least significant first.
func (f Fn) MarshalJSON() ([]byte, error) {
	sign := 1
	if f.v.Sign() == 0 {
		sign = 0
	}
	limbs := bigIntLimbs(&f.v)
	return json.Marshal([2]interface{}{sign, limbs})
}

// UnmarshalJSON implements json.Unmarshaler for Fn.
func (f *Fn) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding field element: %w", err)
	}
	var sign int
	if err := json.Unmarshal(raw[0], &sign); err != nil {
		return fmt.Errorf("decoding field element sign: %w", err)
	}
	var limbs []uint32
	if err := json.Unmarshal(raw[1], &limbs); err != nil {
		return fmt.Errorf("decoding field element limbs: %w", err)
	}
	x := bigIntFromLimbs(sign, limbs)
	f.v.Mod(x, Prime)
	if f.v.Sign() < 0 {
		f.v.Add(&f.v, Prime)
	}
	return nil
}

// String implements fmt.Stringer, printing the element in decimal.
func (f Fn) String() string { return f.v.String() }

// EncodeUintJSON encodes a plain non-negative integer (a share index,
// threshold, or total participant count) using the same [sign, [limbs]]
// wire form as Fn, for use by packages that need bigint-compatible JSON
// fields without reducing the value modulo Prime.
func EncodeUintJSON(x uint64) ([]byte, error) {
	v := new(big.Int).SetUint64(x)
	sign := 1
	if v.Sign() == 0 {
		sign = 0
	}
	return json.Marshal([2]interface{}{sign, bigIntLimbs(v)})
}

// DecodeUintJSON decodes a value encoded by EncodeUintJSON.
func DecodeUintJSON(data []byte) (uint64, error) {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("decoding bigint: %w", err)
	}
	var sign int
	if err := json.Unmarshal(raw[0], &sign); err != nil {
		return 0, fmt.Errorf("decoding bigint sign: %w", err)
	}
	var limbs []uint32
	if err := json.Unmarshal(raw[1], &limbs); err != nil {
		return 0, fmt.Errorf("decoding bigint limbs: %w", err)
	}
	x := bigIntFromLimbs(sign, limbs)
	if !x.IsUint64() {
		return 0, fmt.Errorf("bigint value does not fit in a uint64: %v", x)
	}
	return x.Uint64(), nil
}
