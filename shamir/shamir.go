// Package shamir implements threshold secret sharing over a fixed 512-bit
// prime field. It generalises the curve-order Shamir scheme this package
// started life as (see field.go for the field itself) to the field required
// for obfuscated BIP-39 seed words: every polynomial coefficient and every
// share value lives in Z/pZ for the constant Prime, not in any elliptic
// curve group.
package shamir

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/glottologist/seedmixer/util"
	"github.com/renproject/surge"
)

// ShareSizeBytes is the number of bytes in a single marshalled share.
const ShareSizeBytes = 2 * FnSizeBytes

// Shares represents a slice of Shamir shares, one per participant index.
type Shares []Share

// SizeHint implements the surge.SizeHinter interface.
func (shares Shares) SizeHint() int { return 4 + ShareSizeBytes*len(shares) }

// Marshal implements the surge.Marshaler interface.
func (shares Shares) Marshal(w io.Writer, m int) (int, error) {
	if m < 4 {
		return m, surge.ErrMaxBytesExceeded
	}

	var bs [4]byte
	binary.BigEndian.PutUint32(bs[:], uint32(len(shares)))
	n, err := w.Write(bs[:])
	m -= n
	if err != nil {
		return m, err
	}

	for i := range shares {
		m, err = shares[i].Marshal(w, m)
		if err != nil {
			return m, err
		}
	}

	return m, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (shares *Shares) Unmarshal(r io.Reader, m int) (int, error) {
	var l uint32
	m, err := util.UnmarshalSliceLen32(&l, ShareSizeBytes, r, m)
	if err != nil {
		return m, err
	}

	*shares = (*shares)[:0]
	for i := uint32(0); i < l; i++ {
		*shares = append(*shares, Share{})
		m, err = (*shares)[i].Unmarshal(r, m)
		if err != nil {
			return m, err
		}
	}

	return m, nil
}

// Share represents a single participant's coordinate in a Shamir sharing:
// the polynomial evaluated at the participant's index.
type Share struct {
	index Fn
	value Fn
}

// NewShare constructs a new Shamir share from an index and a value.
func NewShare(index, value Fn) Share {
	return Share{index, value}
}

// Index returns a copy of the index of the share.
func (s *Share) Index() Fn { return s.index }

// Value returns a copy of the value of the share.
func (s *Share) Value() Fn { return s.value }

// IndexEq returns true if the index of the share equals the given index.
func (s *Share) IndexEq(other *Fn) bool { return s.index.Eq(other) }

// Eq returns true if the two shares are equal, and false otherwise.
func (s *Share) Eq(other *Share) bool {
	return s.index.Eq(&other.index) && s.value.Eq(&other.value)
}

// SizeHint implements the surge.SizeHinter interface.
func (s *Share) SizeHint() int { return s.index.SizeHint() + s.value.SizeHint() }

// Marshal implements the surge.Marshaler interface.
func (s *Share) Marshal(w io.Writer, m int) (int, error) {
	m, err := s.index.Marshal(w, m)
	if err != nil {
		return m, err
	}
	return s.value.Marshal(w, m)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (s *Share) Unmarshal(r io.Reader, m int) (int, error) {
	m, err := s.index.Unmarshal(r, m)
	if err != nil {
		return m, err
	}
	return s.value.Unmarshal(r, m)
}

// A Sharer creates Shamir sharings of secrets for a fixed set of
// participant indices.
//
// NOTE: This struct is not safe for concurrent use.
type Sharer struct {
	indices []Fn
	coeffs  []Fn
}

// NewSharer constructs a new Sharer for the given set of participant
// indices.
func NewSharer(indices []Fn) Sharer {
	copied := make([]Fn, len(indices))
	copy(copied, indices)
	return Sharer{indices: copied, coeffs: make([]Fn, len(indices))}
}

// SizeHint implements the surge.SizeHinter interface.
func (sharer *Sharer) SizeHint() int { return 4 + len(sharer.indices)*FnSizeBytes }

// Marshal implements the surge.Marshaler interface.
func (sharer *Sharer) Marshal(w io.Writer, m int) (int, error) {
	return marshalIndices(sharer.indices, w, m)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (sharer *Sharer) Unmarshal(r io.Reader, m int) (int, error) {
	var indices []Fn
	m, err := unmarshalIndices(&indices, r, m)
	if err != nil {
		return m, err
	}
	*sharer = NewSharer(indices)
	return m, nil
}

// Share creates Shamir shares for the given secret at the given threshold
// k, and stores them in the given destination slice. There is one share for
// each index the Sharer was constructed with. An error is returned if k
// exceeds the number of indices, since reconstruction would then be
// impossible for anyone.
//
// Panics: This function will panic if the destination shares slice does not
// have the capacity to hold one share per index.
func (sharer *Sharer) Share(dst *Shares, secret Fn, k int) error {
	if k > len(sharer.indices) {
		return fmt.Errorf(
			"reconstruction threshold too large: expected k <= %v, got k = %v",
			len(sharer.indices), k,
		)
	}
	if k < 1 {
		return fmt.Errorf("reconstruction threshold too small: expected k >= 1, got k = %v", k)
	}

	sharer.setRandomCoeffs(secret, k)

	*dst = (*dst)[:len(sharer.indices)]
	var eval Fn
	for i, ind := range sharer.indices {
		polyEval(&eval, &ind, sharer.coeffs)
		(*dst)[i].index = ind
		(*dst)[i].value = eval
	}

	return nil
}

// setRandomCoeffs sets the coefficients of the Sharer to represent a random
// degree k-1 polynomial with constant term equal to the given secret.
func (sharer *Sharer) setRandomCoeffs(secret Fn, k int) {
	sharer.coeffs = sharer.coeffs[:k]
	sharer.coeffs[0] = secret
	for i := 1; i < k; i++ {
		sharer.coeffs[i] = RandomFn()
	}
}

// polyEval evaluates the polynomial defined by coeffs (constant term first)
// at the point x, using Horner's method, and stores the result in y.
//
// Panics: coeffs must have length at least 1.
func polyEval(y, x *Fn, coeffs []Fn) {
	y.Set(&coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		y.Mul(y, x)
		y.Add(y, &coeffs[i])
	}
}

// A Reconstructor reconstructs secrets from shares for a fixed set of
// participant indices, using Lagrange interpolation at x = 0.
//
// NOTE: This struct is not safe for concurrent use.
type Reconstructor struct {
	indices    []Fn
	fullProd   []Fn
	indInv     []Fn
	indInts    []int
	seen       []bool
	complement []int
}

// SizeHint implements the surge.SizeHinter interface.
func (r *Reconstructor) SizeHint() int { return 4 + len(r.indices)*FnSizeBytes }

// Marshal implements the surge.Marshaler interface.
func (r *Reconstructor) Marshal(w io.Writer, m int) (int, error) {
	return marshalIndices(r.indices, w, m)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (r *Reconstructor) Unmarshal(reader io.Reader, m int) (int, error) {
	var indices []Fn
	m, err := unmarshalIndices(&indices, reader, m)
	if err != nil {
		return m, err
	}
	*r = NewReconstructor(indices)
	return m, nil
}

// NewReconstructor returns a new Reconstructor for the given indices,
// precomputing the Lagrange coefficients' common factors so that Open can
// avoid repeating the most expensive step (field inversions) per call.
func NewReconstructor(indices []Fn) Reconstructor {
	fullProd := make([]Fn, len(indices))
	indInv := make([]Fn, len(indices))

	var neg, inv Fn
	for i := range indices {
		fullProd[i] = NewFnFromUint16(1)
		neg.Neg(&indices[i])
		for j := range indices {
			if i == j {
				continue
			}
			inv.Add(&indices[j], &neg)
			inv.Inv(&inv)
			inv.Mul(&inv, &indices[j])
			fullProd[i].Mul(&fullProd[i], &inv)
		}
	}
	for i, ind := range indices {
		indInv[i].Inv(&ind)
	}

	return Reconstructor{
		indices:    indices,
		fullProd:   fullProd,
		indInv:     indInv,
		indInts:    make([]int, len(indices)),
		seen:       make([]bool, len(indices)),
		complement: make([]int, len(indices)),
	}
}

// Open returns the secret corresponding to the given shares, or an error if
// the shares do not have valid indices for the index set the Reconstructor
// was constructed with, or if any two shares share an index.
//
// NOTE: This function has no knowledge of the reconstruction threshold k.
// If invoked with fewer than k shares for a k-sharing, no error is returned
// but the result will be wrong. Use CheckedOpen when k is known.
//
// NOTE: This function assumes the given shares are honest (unaltered).
func (r *Reconstructor) Open(shares Shares) (Fn, error) {
	var secret Fn

	if len(shares) > len(r.indices) {
		return secret, fmt.Errorf(
			"too many shares: expected len(shares) <= %v, got len(shares) = %v",
			len(r.indices), len(shares),
		)
	}

	r.indInts = r.indInts[:len(shares)]
OUTER:
	for i, share := range shares {
		for j, ind := range r.indices {
			if share.IndexEq(&ind) {
				r.indInts[i] = j
				continue OUTER
			}
		}
		return secret, fmt.Errorf(
			"unexpected share index: share has index %v which is out of the index set",
			share.Index(),
		)
	}

	for i := range r.seen {
		r.seen[i] = false
	}
	for _, ind := range r.indInts {
		if r.seen[ind] {
			return secret, fmt.Errorf(
				"shares must have distinct indices: two shares have index %v",
				r.indices[ind],
			)
		}
		r.seen[ind] = true
	}

	r.complement = r.complement[:cap(r.complement)]
	for i := range r.complement {
		r.complement[i] = 1
	}
	for _, ind := range r.indInts {
		r.complement[ind] = 0
	}
	var toggle int
	for i, j := 0, 0; i < len(r.indices); i++ {
		toggle = r.complement[i]
		r.complement[j] = toggle * i
		j += toggle
	}
	r.complement = r.complement[:len(r.indices)-len(shares)]

	// Altered Lagrange interpolation that reuses the precomputed
	// full-index-set products, adjusted by dividing out the terms that
	// correspond to indices absent from the given shares.
	var term, diff Fn
	for i, share := range shares {
		term = share.Value()
		term.Mul(&term, &r.fullProd[r.indInts[i]])
		for _, j := range r.complement {
			diff.Neg(&r.indices[r.indInts[i]])
			diff.Add(&r.indices[j], &diff)
			term.Mul(&term, &diff)
			term.Mul(&term, &r.indInv[j])
		}
		secret.Add(&secret, &term)
	}

	return secret, nil
}

// CheckedOpen wraps Open, additionally checking that at least k shares were
// provided, returning an error if not.
func (r *Reconstructor) CheckedOpen(shares Shares, k int) (Fn, error) {
	if len(shares) < k {
		return Fn{}, fmt.Errorf(
			"not enough shares for reconstruction: expected at least %v, got %v",
			k, len(shares),
		)
	}
	return r.Open(shares)
}
