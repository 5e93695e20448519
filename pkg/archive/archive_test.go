package archive

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestIsTarGz(t *testing.T) {
	dir := t.TempDir()

	tarball := filepath.Join(dir, "model.tar.gz")
	writeTarGz(t, tarball, map[string]string{"predictor.pkl": "payload"})
	assert.True(t, IsTarGz(tarball))

	plain := filepath.Join(dir, "model.txt")
	require.NoError(t, os.WriteFile(plain, []byte("not a tarball"), 0o644))
	assert.False(t, IsTarGz(plain))

	// Gzip that is not a tar archive inside.
	gzOnly := filepath.Join(dir, "data.gz")
	f, err := os.Create(gzOnly)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("just gzipped text"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	assert.False(t, IsTarGz(gzOnly))

	assert.False(t, IsTarGz(filepath.Join(dir, "missing.tar.gz")))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	tarball := filepath.Join(dir, "model.tar.gz")
	writeTarGz(t, tarball, map[string]string{
		"model/learner.bin":   "weights",
		"model/metadata.json": `{"version": 1}`,
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, ExtractTarGz(tarball, dest))

	content, err := os.ReadFile(filepath.Join(dest, "model", "learner.bin"))
	require.NoError(t, err)
	assert.Equal(t, "weights", string(content))

	content, err = os.ReadFile(filepath.Join(dest, "model", "metadata.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"version": 1}`, string(content))
}

func TestExtractTarGz_RejectsEscape(t *testing.T) {
	dir := t.TempDir()
	tarball := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, tarball, map[string]string{
		"../outside.txt": "escape attempt",
	})

	err := ExtractTarGz(tarball, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathEscape)
}
