package postbuild

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveUnwanted(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), map[string]string{
		"_media/logo.png": "\x89PNG\x00",
		"index.md":        "# API\n",
	})

	removed, err := newTestProcessor(t, cfg).RemoveUnwanted()
	require.NoError(t, err)
	assert.Equal(t, []string{"api/_media"}, removed)
	assert.NoDirExists(t, filepath.Join(cfg.APIRoot(), "_media"))
	assert.FileExists(t, filepath.Join(cfg.APIRoot(), "index.md"))
}

func TestRemoveUnwanted_MissingPathsSkipped(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.RemovePaths = []string{"api/_media", "api/.nojekyll"}

	removed, err := newTestProcessor(t, cfg).RemoveUnwanted()
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestRemoveUnwanted_SingleFile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.RemovePaths = []string{"api/.nojekyll"}
	writeTree(t, cfg.APIRoot(), map[string]string{".nojekyll": ""})

	removed, err := newTestProcessor(t, cfg).RemoveUnwanted()
	require.NoError(t, err)
	assert.Equal(t, []string{"api/.nojekyll"}, removed)
	assert.NoFileExists(t, filepath.Join(cfg.APIRoot(), ".nojekyll"))
}
