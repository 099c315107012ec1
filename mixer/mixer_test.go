package mixer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glottologist/seedmixer/mixer"
	"github.com/glottologist/seedmixer/pin"
	"github.com/glottologist/seedmixer/seed"
)

func mustSeed(t *testing.T, indices []uint16) seed.Seed {
	t.Helper()
	s, err := seed.New(indices)
	require.NoError(t, err)
	return s
}

func mustPin(t *testing.T, digits []uint8) pin.PIN {
	t.Helper()
	p, err := pin.New(digits)
	require.NoError(t, err)
	return p
}

func sequentialSeed(t *testing.T, length int) seed.Seed {
	indices := make([]uint16, length)
	for i := range indices {
		indices[i] = uint16(i%2048) + 1
	}
	return mustSeed(t, indices)
}

func filterShares[V any](m map[uint64]V, keep []uint64) map[uint64]V {
	out := make(map[uint64]V, len(keep))
	for _, k := range keep {
		out[k] = m[k]
	}
	return out
}

func TestMixUnmixFourOfFive(t *testing.T) {
	s := sequentialSeed(t, 24)
	p := mustPin(t, []uint8{1, 2, 3, 4})

	shares, err := mixer.Mix(s, p, 5, 4)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	got, err := mixer.Unmix(filterShares(shares, []uint64{1, 2, 3, 5}), p)
	require.NoError(t, err)
	require.True(t, got.Eq(s))
}

func TestMixUnmixAnyFourOfFive(t *testing.T) {
	s := sequentialSeed(t, 12)
	p := mustPin(t, []uint8{9, 8, 7})

	shares, err := mixer.Mix(s, p, 5, 4)
	require.NoError(t, err)

	combos := [][]uint64{
		{1, 2, 3, 4},
		{2, 3, 4, 5},
		{1, 3, 4, 5},
		{1, 2, 4, 5},
		{1, 2, 3, 5},
	}
	for _, combo := range combos {
		got, err := mixer.Unmix(filterShares(shares, combo), p)
		require.NoError(t, err)
		require.True(t, got.Eq(s))
	}
}

func TestUnmixWrongPinDoesNotError(t *testing.T) {
	s := sequentialSeed(t, 24)
	correct := mustPin(t, []uint8{1, 2, 3, 4})
	wrong := mustPin(t, []uint8{1, 2, 3, 5})

	shares, err := mixer.Mix(s, correct, 5, 4)
	require.NoError(t, err)

	got, err := mixer.Unmix(filterShares(shares, []uint64{1, 2, 3, 4}), wrong)
	if err != nil {
		// Landing on an invalid seed index is an acceptable outcome too,
		// since obfuscation is not authenticated.
		return
	}
	require.False(t, got.Eq(s))
}

func TestMixRejectsThresholdGreaterOrEqualToTotal(t *testing.T) {
	s := sequentialSeed(t, 12)
	p := mustPin(t, []uint8{1, 2, 3})

	_, err := mixer.Mix(s, p, 3, 3)
	require.ErrorIs(t, err, mixer.ErrIncorrectNumberOfSharesProvided)
}

func TestUnmixTooFewShares(t *testing.T) {
	s := sequentialSeed(t, 12)
	p := mustPin(t, []uint8{1, 2, 3})

	shares, err := mixer.Mix(s, p, 5, 3)
	require.NoError(t, err)

	_, err = mixer.Unmix(filterShares(shares, []uint64{1, 2}), p)
	require.ErrorIs(t, err, mixer.ErrNotEnoughThresholdSharesProvided)
}

func TestUnmixTooManyShares(t *testing.T) {
	s := sequentialSeed(t, 12)
	p := mustPin(t, []uint8{1, 2, 3})

	shares, err := mixer.Mix(s, p, 5, 3)
	require.NoError(t, err)

	_, err = mixer.Unmix(filterShares(shares, []uint64{1, 2, 3, 4}), p)
	require.ErrorIs(t, err, mixer.ErrTooManyThresholdSharesProvided)
}

func TestUnmixEmptyShareMap(t *testing.T) {
	p := mustPin(t, []uint8{1, 2, 3})
	_, err := mixer.Unmix(nil, p)
	require.ErrorIs(t, err, mixer.ErrEmptyShareMap)
}

func TestUnmixRejectsInconsistentParameters(t *testing.T) {
	s1 := sequentialSeed(t, 12)
	s2 := sequentialSeed(t, 12)
	p := mustPin(t, []uint8{1, 2, 3})

	shares1, err := mixer.Mix(s1, p, 5, 3)
	require.NoError(t, err)
	shares2, err := mixer.Mix(s2, p, 5, 4)
	require.NoError(t, err)

	combo := filterShares(shares1, []uint64{1, 2})
	for k, v := range filterShares(shares2, []uint64{3}) {
		combo[k] = v
	}

	_, err = mixer.Unmix(combo, p)
	require.Error(t, err)
}
