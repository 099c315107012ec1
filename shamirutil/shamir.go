// Package shamirutil provides test helpers for generating and perturbing
// Shamir shares and indices over the fixed field used by package shamir.
package shamirutil

import (
	"math/rand"

	"github.com/glottologist/seedmixer/shamir"
)

// RandomIndices initialises and returns a slice of n indices, each of which
// is random. Often it is desired that each index is distinct; this function
// does not guarantee that, but the chance of a collision is negligible for
// the field sizes used here.
func RandomIndices(n int) []shamir.Fn {
	indices := make([]shamir.Fn, n)
	for i := range indices {
		indices[i] = shamir.RandomFn()
	}
	return indices
}

// SequentialIndices initialises and returns a slice of n indices, where
// slice index i holds the field element i+1.
func SequentialIndices(n int) []shamir.Fn {
	indices := make([]shamir.Fn, n)
	for i := range indices {
		indices[i] = shamir.NewFnFromUint16(uint16(i) + 1)
	}
	return indices
}

// Shuffle randomises the order of the given shares in place.
func Shuffle(shares shamir.Shares) {
	rand.Shuffle(len(shares), func(i, j int) {
		shares[i], shares[j] = shares[j], shares[i]
	})
}

// AddDuplicateIndex picks two random (distinct) indices in the given slice
// of shares and sets the share index of the second to be equal to that of
// the first, for exercising the Reconstructor's duplicate-index detection.
func AddDuplicateIndex(shares shamir.Shares) {
	first, second := rand.Intn(len(shares)), rand.Intn(len(shares))
	for first == second {
		second = rand.Intn(len(shares))
	}
	index := shares[first].Index()
	shares[second] = shamir.NewShare(index, shares[second].Value())
}

// SharesAreConsistent returns true if every size-k window of the given
// shares reconstructs to the same secret, i.e. all points lie on a single
// polynomial of degree less than k.
func SharesAreConsistent(shares shamir.Shares, reconstructor *shamir.Reconstructor, k int) bool {
	if len(shares) < k {
		return true
	}

	secret, err := reconstructor.Open(shares[:k])
	if err != nil {
		return false
	}
	for i := 1; i <= len(shares)-k; i++ {
		recon, err := reconstructor.Open(shares[i : i+k])
		if err != nil || !recon.Eq(&secret) {
			return false
		}
	}

	return true
}
