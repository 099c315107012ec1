package pin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glottologist/seedmixer/pin"
	"github.com/glottologist/seedmixer/seed"
)

func mustSeed(t *testing.T, indices []uint16) seed.Seed {
	t.Helper()
	s, err := seed.New(indices)
	require.NoError(t, err)
	return s
}

func TestShiftUnshiftRoundTrip(t *testing.T) {
	s := mustSeed(t, []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	p, err := pin.New([]uint8{1, 2, 3, 4})
	require.NoError(t, err)

	obf := pin.Shift(s, p)
	got, err := pin.Unshift(obf, p)
	require.NoError(t, err)
	require.True(t, got.Eq(s))
}

func TestShiftIsNonIdentityForNonTrivialPin(t *testing.T) {
	s := mustSeed(t, []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	p, err := pin.New([]uint8{1, 2, 3, 4})
	require.NoError(t, err)

	obf := pin.Shift(s, p)
	changed := false
	for i := 0; i < s.Len(); i++ {
		if obf.At(i) != s.At(i) {
			changed = true
			break
		}
	}
	require.True(t, changed)
}

func TestWrongPinProducesDifferentSeed(t *testing.T) {
	s := mustSeed(t, []uint16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	correct, err := pin.New([]uint8{1, 2, 3, 4})
	require.NoError(t, err)
	wrong, err := pin.New([]uint8{1, 2, 3, 5})
	require.NoError(t, err)

	obf := pin.Shift(s, correct)
	got, err := pin.Unshift(obf, wrong)
	if err != nil {
		// Landing on index 0 is also an acceptable outcome of the wrong
		// PIN, since obfuscation is not authenticated.
		return
	}
	require.False(t, got.Eq(s))
}

func TestNewRejectsZeroDigit(t *testing.T) {
	_, err := pin.New([]uint8{1, 2, 0, 4})
	require.ErrorIs(t, err, pin.ErrDigitOutOfRange)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := pin.New(nil)
	require.ErrorIs(t, err, pin.ErrEmpty)
}
