package crypt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glottologist/seedmixer/crypt"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := crypt.New()
	require.NoError(t, err)

	for _, m := range [][]byte{
		[]byte("hello"),
		[]byte(""),
		make([]byte, 128),
	} {
		ct, err := c.Encrypt(m)
		require.NoError(t, err)

		pt, err := c.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, m, pt)
	}
}

func TestFromHexRoundTrip(t *testing.T) {
	original, err := crypt.New()
	require.NoError(t, err)

	restored, err := crypt.NewFromHex(original.SecretKeyHex())
	require.NoError(t, err)

	m := []byte("secret share coordinate")
	ct, err := original.Encrypt(m)
	require.NoError(t, err)

	pt, err := restored.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, m, pt)
}

func TestFromHexRejectsWrongLength(t *testing.T) {
	_, err := crypt.NewFromHex("abcd")
	require.ErrorIs(t, err, crypt.ErrInvalidSecretKey)
}

func TestPassphraseDerivationIsDeterministic(t *testing.T) {
	salt, err := crypt.NewSalt()
	require.NoError(t, err)

	a, err := crypt.NewFromPassphrase("correct horse battery staple", salt)
	require.NoError(t, err)
	b, err := crypt.NewFromPassphrase("correct horse battery staple", salt)
	require.NoError(t, err)

	m := []byte("cross-derivation round trip")
	ct, err := a.Encrypt(m)
	require.NoError(t, err)

	pt, err := b.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, m, pt)
}

func TestPassphraseMismatchFailsToDecrypt(t *testing.T) {
	salt, err := crypt.NewSalt()
	require.NoError(t, err)

	a, err := crypt.NewFromPassphrase("correct horse battery staple", salt)
	require.NoError(t, err)
	b, err := crypt.NewFromPassphrase("wrong passphrase entirely", salt)
	require.NoError(t, err)

	ct, err := a.Encrypt([]byte("payload"))
	require.NoError(t, err)

	_, err = b.Decrypt(ct)
	require.Error(t, err)
}
