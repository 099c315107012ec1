// Package mixer orchestrates the end-to-end mix and unmix operations,
// composing PIN obfuscation, Shamir splitting, and share-map bookkeeping,
// and enforcing the invariants that the individual components do not
// enforce on their own.
package mixer

import (
	"errors"
	"fmt"

	"github.com/glottologist/seedmixer/pin"
	"github.com/glottologist/seedmixer/seed"
	"github.com/glottologist/seedmixer/shamir"
	"github.com/glottologist/seedmixer/share"
)

// Sentinel errors. These name error kinds, not strings to match against;
// callers should use errors.Is.
var (
	// ErrIncorrectNumberOfSharesProvided is returned by Mix when the
	// threshold K is not strictly less than the total N.
	ErrIncorrectNumberOfSharesProvided = errors.New("mixer: threshold must be strictly less than total shares")

	// ErrIncorrectNumberOfSharesGenerated is returned by Mix if its own
	// post-conditions on the generated share map are violated. This
	// should never happen given a correct Shamir implementation; it
	// exists as a defensive internal-consistency check.
	ErrIncorrectNumberOfSharesGenerated = errors.New("mixer: generated share map failed post-condition checks")

	// ErrEmptyShareMap is returned by Unmix when given no shares.
	ErrEmptyShareMap = errors.New("mixer: share map must not be empty")

	// ErrInconsistentShareParameters is returned by Unmix when the shares
	// in the input map do not all report the same threshold and total.
	ErrInconsistentShareParameters = errors.New("mixer: shares report inconsistent threshold/total parameters")

	// ErrNotEnoughThresholdSharesProvided is returned by Unmix when fewer
	// shares than the threshold are provided.
	ErrNotEnoughThresholdSharesProvided = errors.New("mixer: not enough shares provided to meet the threshold")

	// ErrTooManyThresholdSharesProvided is returned by Unmix when more
	// shares than the threshold are provided. The tool requires exactly
	// the threshold, neither more nor fewer.
	ErrTooManyThresholdSharesProvided = errors.New("mixer: more shares provided than the threshold requires")

	// ErrInconsistentShareLengths is returned by Unmix when the shares in
	// the input map do not all carry the same number of seed positions.
	ErrInconsistentShareLengths = errors.New("mixer: shares report inconsistent seed lengths")
)

// Mix obfuscates s with p, splits each obfuscated position into a
// (threshold, total) Shamir sharing, and reshapes the result into one
// SecretShare per participant index.
//
// Preconditions: threshold must be strictly less than total (mirroring the
// CLI's --threshold/--shares flags); s and p are assumed already validated
// by their own constructors.
func Mix(s seed.Seed, p pin.PIN, total, threshold int) (map[uint64]share.SecretShare, error) {
	if !(threshold < total) {
		return nil, fmt.Errorf("%w: threshold=%d, total=%d", ErrIncorrectNumberOfSharesProvided, threshold, total)
	}

	obf := pin.Shift(s, p)

	indices := make([]shamir.Fn, total)
	for x := 1; x <= total; x++ {
		indices[x-1] = shamir.NewFnFromUint16(uint16(x))
	}
	sharer := shamir.NewSharer(indices)

	// perPosition[j] holds the N shares of the j-th obfuscated index.
	perPosition := make([]shamir.Shares, obf.Len())
	for j := 0; j < obf.Len(); j++ {
		secret := shamir.NewFnFromUint16(obf.At(j))
		var shares shamir.Shares
		shares = make(shamir.Shares, total)
		if err := sharer.Share(&shares, secret, threshold); err != nil {
			return nil, fmt.Errorf("mixer: splitting position %d: %w", j, err)
		}
		perPosition[j] = shares
	}

	result := make(map[uint64]share.SecretShare, total)
	for x := 1; x <= total; x++ {
		values := make([]shamir.Fn, obf.Len())
		for j := 0; j < obf.Len(); j++ {
			values[j] = perPosition[j][x-1].Value()
		}
		result[uint64(x)] = share.SecretShare{
			Index:     uint64(x),
			Threshold: uint64(threshold),
			Total:     uint64(total),
			Shares:    values,
		}
	}

	if len(result) != total {
		return nil, fmt.Errorf("%w: expected %d entries, got %d", ErrIncorrectNumberOfSharesGenerated, total, len(result))
	}
	for x, sh := range result {
		if len(sh.Shares) != obf.Len() {
			return nil, fmt.Errorf(
				"%w: participant %d has %d positions, expected %d",
				ErrIncorrectNumberOfSharesGenerated, x, len(sh.Shares), obf.Len(),
			)
		}
	}

	return result, nil
}

// Unmix reconstructs the original Seed from a map of exactly threshold
// SecretShares, using the given PIN to reverse the obfuscation applied by
// Mix.
//
// Per §4.6, this performs no authentication of the obfuscation: if pin does
// not match the PIN used by the corresponding Mix call, Unmix will either
// return a Seed that does not correspond to the original mnemonic, or fail
// Seed validation if the arithmetic happens to produce index 0.
func Unmix(shares map[uint64]share.SecretShare, p pin.PIN) (seed.Seed, error) {
	if len(shares) == 0 {
		return seed.Seed{}, ErrEmptyShareMap
	}

	var threshold, total uint64
	first := true
	var length int
	for _, s := range shares {
		if first {
			threshold, total, length = s.Threshold, s.Total, len(s.Shares)
			first = false
			continue
		}
		if s.Threshold != threshold || s.Total != total {
			return seed.Seed{}, ErrInconsistentShareParameters
		}
		if len(s.Shares) != length {
			return seed.Seed{}, ErrInconsistentShareLengths
		}
	}

	k := int(threshold)
	switch {
	case len(shares) < k:
		return seed.Seed{}, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughThresholdSharesProvided, len(shares), k)
	case len(shares) > k:
		return seed.Seed{}, fmt.Errorf("%w: have %d, need exactly %d", ErrTooManyThresholdSharesProvided, len(shares), k)
	}

	indices := make([]shamir.Fn, 0, len(shares))
	for x := range shares {
		indices = append(indices, shamir.NewFnFromUint16(uint16(x)))
	}
	reconstructor := shamir.NewReconstructor(indices)

	obfIndices := make([]uint16, length)
	for j := 0; j < length; j++ {
		var coords shamir.Shares
		for x, s := range shares {
			coords = append(coords, shamir.NewShare(shamir.NewFnFromUint16(uint16(x)), s.Shares[j]))
		}
		secret, err := reconstructor.CheckedOpen(coords, k)
		if err != nil {
			return seed.Seed{}, fmt.Errorf("mixer: reconstructing position %d: %w", j, err)
		}
		asInt := secret.Int()
		if !asInt.IsUint64() || asInt.Uint64() > 0xFFFF {
			return seed.Seed{}, fmt.Errorf("mixer: reconstructed value at position %d does not fit in 16 bits: %v", j, asInt)
		}
		obfIndices[j] = uint16(asInt.Uint64())
	}

	obf := pin.NewObfuscatedSeed(obfIndices)
	return pin.Unshift(obf, p)
}
