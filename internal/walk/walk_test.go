package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hi\n"), 0o644))

	files, err := Collect([]string{dir}, Options{Extensions: []string{"py"}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "a.py"), files[0])
}

func TestCollect_SkipsHiddenAndVendorDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "x.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "y.py"), []byte("y = 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.py"), []byte("z = 3\n"), 0o644))

	files, err := Collect([]string{dir}, Options{Extensions: []string{"py"}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "z.py"), files[0])
}

func TestCollect_DeduplicatesByCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("x = 1\n"), 0o644))

	files, err := Collect([]string{dir, filepath.Join(dir, "a.py")}, Options{Extensions: []string{"py"}})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
