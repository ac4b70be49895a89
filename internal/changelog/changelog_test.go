package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_CreatesFile(t *testing.T) {
	dir := t.TempDir()

	err := Update(dir, "CHANGELOG.txt", "2.0.0", "Update Plotly.js CDN to v2.0.0")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.txt"))
	require.NoError(t, err)

	assert.Equal(t, "v2.0.0\n- Update Plotly.js CDN to v2.0.0\n\n", string(content))
}

func TestUpdate_PrependsToExisting(t *testing.T) {
	dir := t.TempDir()
	existing := "v1.9.0\n- Update Plotly.js CDN to v1.9.0\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.txt"), []byte(existing), 0600))

	err := Update(dir, "CHANGELOG.txt", "2.0.0", "Update Plotly.js CDN to v2.0.0")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.txt"))
	require.NoError(t, err)

	got := string(content)
	assert.True(t, strings.HasPrefix(got, "v2.0.0\n"), "new entry should come first, got:\n%s", got)
	assert.Contains(t, got, existing)
}

func TestUpdate_MissingDirectory(t *testing.T) {
	err := Update(filepath.Join(t.TempDir(), "does-not-exist"), "CHANGELOG.txt", "2.0.0", "title")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write changelog")
}
