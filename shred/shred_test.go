package shred_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glottologist/seedmixer/shred"
)

func TestFileRemovesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"index":[1,[1]]}`), 0o600))

	require.NoError(t, shred.FileWithPasses(path, 3))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := shred.File(dir)
	require.ErrorIs(t, err, shred.ErrNotRegularFile)
}

func TestFilesStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte("x"), 0o600))
	missing := filepath.Join(dir, "missing.json")

	err := shred.Files([]string{good, missing})
	require.Error(t, err)

	_, statErr := os.Stat(good)
	require.True(t, os.IsNotExist(statErr))
}
