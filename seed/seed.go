// Package seed models a validated mnemonic as an ordered vector of BIP-39
// word indices.
package seed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/glottologist/seedmixer/words"
)

// MinIndex and MaxIndex bound a valid one-based seed index. Index 0 is
// reserved as invalid so that the PIN obfuscation modulus can be 2049 (see
// the pin package).
const (
	MinIndex uint16 = 1
	MaxIndex uint16 = 2048
)

// ErrInvalidLength is returned when a seed is constructed with a length
// outside the valid BIP-39 mnemonic lengths.
var ErrInvalidLength = errors.New("seed: length must be 12, 16, or 24")

// ErrIndexOutOfRange is returned when a seed index falls outside
// [MinIndex, MaxIndex].
var ErrIndexOutOfRange = errors.New("seed: index out of range")

// ValidLength reports whether l is one of the three valid mnemonic
// lengths.
func ValidLength(l int) bool {
	return l == 12 || l == 16 || l == 24
}

// Seed is an immutable, validated ordered sequence of one-based BIP-39 word
// indices.
type Seed struct {
	indices []uint16
}

// New validates and constructs a Seed from the given one-based indices.
// Every index must satisfy MinIndex <= i <= MaxIndex, and the length must
// be one of {12, 16, 24}.
func New(indices []uint16) (Seed, error) {
	if !ValidLength(len(indices)) {
		return Seed{}, fmt.Errorf("%w: got length %d", ErrInvalidLength, len(indices))
	}
	for pos, i := range indices {
		if i < MinIndex || i > MaxIndex {
			return Seed{}, fmt.Errorf("%w: position %d has index %d", ErrIndexOutOfRange, pos, i)
		}
	}

	copied := make([]uint16, len(indices))
	copy(copied, indices)
	return Seed{indices: copied}, nil
}

// FromWords resolves each mnemonic word against the given WordList and
// constructs a Seed from the resulting (one-based) indices. A WordList
// internally addresses words by their zero-based position, so every
// resolved index is shifted by +1 to meet the Seed contract.
func FromWords(wl *words.WordList, mnemonic []string) (Seed, error) {
	indices := make([]uint16, len(mnemonic))
	for i, w := range mnemonic {
		zeroBased, err := wl.LookupIndex(w)
		if err != nil {
			return Seed{}, fmt.Errorf("seed: word %d (%q): %w", i, w, err)
		}
		indices[i] = zeroBased + 1
	}
	return New(indices)
}

// Words resolves the seed's indices back into mnemonic words using the
// given WordList, reversing the +1 shift applied by FromWords.
func (s Seed) Words(wl *words.WordList) ([]string, error) {
	out := make([]string, len(s.indices))
	for i, idx := range s.indices {
		word, err := wl.LookupWord(idx - 1)
		if err != nil {
			return nil, fmt.Errorf("seed: index %d at position %d: %w", idx, i, err)
		}
		out[i] = word
	}
	return out, nil
}

// Len returns the number of indices in the seed.
func (s Seed) Len() int { return len(s.indices) }

// Indices returns a copy of the seed's underlying indices.
func (s Seed) Indices() []uint16 {
	out := make([]uint16, len(s.indices))
	copy(out, s.indices)
	return out
}

// At returns the index at the given position.
func (s Seed) At(i int) uint16 { return s.indices[i] }

// Eq returns true if the two seeds hold identical index sequences.
func (s Seed) Eq(other Seed) bool {
	if len(s.indices) != len(other.indices) {
		return false
	}
	for i := range s.indices {
		if s.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

// String renders the seed as a comma-separated bracketed index list, e.g.
// "[1, 2, 3]".
func (s Seed) String() string {
	parts := make([]string, len(s.indices))
	for i, idx := range s.indices {
		parts[i] = strconv.Itoa(int(idx))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
