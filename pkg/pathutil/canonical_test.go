package pathutil_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/RomanHargrave/lyrebird/pkg/pathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realDir(t *testing.T) string {
	t.Helper()
	// TempDir may itself sit behind a symlink (/tmp -> /private/tmp on macOS).
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestCanonical_Relative(t *testing.T) {
	dir := realDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), nil, 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	got, err := pathutil.Canonical("target")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "target"), got)
}

func TestCanonical_ResolvesSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	dir := realDir(t)
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, nil, 0644))
	require.NoError(t, os.Symlink(target, link))

	got, err := pathutil.Canonical(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestCanonical_DotSegments(t *testing.T) {
	dir := realDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target"), nil, 0644))

	got, err := pathutil.Canonical(filepath.Join(dir, "sub", "..", ".", "target"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "target"), got)
}

func TestCanonical_Missing(t *testing.T) {
	_, err := pathutil.Canonical(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
