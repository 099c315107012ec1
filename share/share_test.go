package share_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glottologist/seedmixer/crypt"
	"github.com/glottologist/seedmixer/shamir"
	"github.com/glottologist/seedmixer/share"
)

func TestSecretShareWireFormat(t *testing.T) {
	s := share.SecretShare{
		Index:     1,
		Threshold: 3,
		Total:     5,
		Shares:    []shamir.Fn{shamir.NewFnFromUint16(1)},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"index":[1,[1]],"threshold":[1,[3]],"total":[1,[5]],"shares":[[1,[1]]]}`, string(data))

	var got share.SecretShare
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, s.Index, got.Index)
	require.Equal(t, s.Threshold, got.Threshold)
	require.Equal(t, s.Total, got.Total)
	require.Len(t, got.Shares, 1)
	require.True(t, got.Shares[0].Eq(&s.Shares[0]))
}

func TestEncryptDecryptShareRoundTrip(t *testing.T) {
	c, err := crypt.New()
	require.NoError(t, err)

	s := share.SecretShare{
		Index:     2,
		Threshold: 3,
		Total:     5,
		Shares:    []shamir.Fn{shamir.NewFnFromUint16(42), shamir.NewFnFromUint16(7)},
	}

	enc, err := s.Encrypt(c)
	require.NoError(t, err)
	require.Len(t, enc.Shares, 2)

	got, err := enc.Decrypt(c)
	require.NoError(t, err)
	require.Equal(t, s.Index, got.Index)
	for i := range s.Shares {
		require.True(t, got.Shares[i].Eq(&s.Shares[i]))
	}
}

func TestFileStorerAndCollectorRoundTrip(t *testing.T) {
	dir := t.TempDir()

	shares := map[uint64]share.SecretShare{
		1: {Index: 1, Threshold: 2, Total: 3, Shares: []shamir.Fn{shamir.NewFnFromUint16(10)}},
		2: {Index: 2, Threshold: 2, Total: 3, Shares: []shamir.Fn{shamir.NewFnFromUint16(20)}},
		3: {Index: 3, Threshold: 2, Total: 3, Shares: []shamir.Fn{shamir.NewFnFromUint16(30)}},
	}

	require.NoError(t, (share.FileStorer{}).Store(dir, "test", shares))

	paths := []string{
		filepath.Join(dir, "test_share_1_of_3.json"),
		filepath.Join(dir, "test_share_2_of_3.json"),
		filepath.Join(dir, "test_share_3_of_3.json"),
	}
	for _, p := range paths {
		_, err := os.Stat(p)
		require.NoError(t, err)
	}

	got, err := (share.FileCollector{}).Collect(paths)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for idx, want := range shares {
		require.True(t, got[idx].Shares[0].Eq(&want.Shares[0]))
	}
}

func TestEncryptedFileStorerWritesKeyFileOnlyInRandomMode(t *testing.T) {
	dir := t.TempDir()
	shares := map[uint64]share.SecretShare{
		1: {Index: 1, Threshold: 1, Total: 1, Shares: []shamir.Fn{shamir.NewFnFromUint16(5)}},
	}

	require.NoError(t, (share.EncryptedFileStorer{}).Store(dir, "k", shares))
	_, err := os.Stat(filepath.Join(dir, "k_enc_share_key.json"))
	require.NoError(t, err)

	dir2 := t.TempDir()
	require.NoError(t, (share.EncryptedFileStorer{Passphrase: "hunter2"}).Store(dir2, "p", shares))
	_, err = os.Stat(filepath.Join(dir2, "p_enc_share_key.json"))
	require.True(t, os.IsNotExist(err))
}

func TestEncryptedFileCollectorPassphraseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	shares := map[uint64]share.SecretShare{
		1: {Index: 1, Threshold: 1, Total: 1, Shares: []shamir.Fn{shamir.NewFnFromUint16(99)}},
	}

	require.NoError(t, (share.EncryptedFileStorer{Passphrase: "correct horse battery staple"}).Store(dir, "p", shares))

	path := filepath.Join(dir, "p_enc_share_1_of_1.json")
	got, err := (share.EncryptedFileCollector{Passphrase: "correct horse battery staple"}).Collect([]string{path})
	require.NoError(t, err)
	require.True(t, got[1].Shares[0].Eq(&shares[1].Shares[0]))

	_, err = (share.EncryptedFileCollector{Passphrase: "wrong passphrase"}).Collect([]string{path})
	require.Error(t, err)
}
