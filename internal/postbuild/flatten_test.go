package postbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenModules_LiftsKindDirectories(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), map[string]string{
		"core/index.md":       "# core\n",
		"core/classes/Foo.md": "# Foo\n",
	})

	res, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)

	tree := readTree(t, cfg.APIRoot())
	assert.Contains(t, tree, "core/Foo.md")
	assert.Contains(t, tree, "core/index.md")
	assert.NotContains(t, tree, "core/classes/")

	assert.Contains(t, res.Substitutions, Substitution{Pattern: "core/classes/Foo.md", Replacement: "Core/Foo.md"})
	assert.Equal(t, []Move{{From: "core/classes/Foo.md", To: "core/Foo.md"}}, res.Moves)
	assert.Empty(t, res.IndexRenames)
}

func TestFlattenModules_Fixture(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), typedocFixture())

	res, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)

	assert.Equal(t, Substitutions{
		{Pattern: "core/classes/Foo.md", Replacement: "Core/Foo.md"},
		{Pattern: "core/enumerations/Color.md", Replacement: "Core/Color.md"},
		{Pattern: "core/interfaces/Shape.md", Replacement: "Core/Shape.md"},
		{Pattern: "core/test_utils/classes/Mock.md", Replacement: "Core/Mock.md"},
		{Pattern: "test_utils/index.md", Replacement: "./test_utils-index.md"},
		{Pattern: "index/index.md", Replacement: "./src-index.md"},
		{Pattern: "utils/classes/Helper.md", Replacement: "Utils/Helper.md"},
	}, res.Substitutions)

	assert.Equal(t, []Move{
		{From: "core/test_utils/index.md", To: "core/test_utils-index.md"},
		{From: "logger/index/index.md", To: "logger/src-index.md"},
	}, res.IndexRenames)
	assert.Len(t, res.Moves, 5)

	tree := readTree(t, cfg.APIRoot())
	for _, want := range []string{
		"core/Foo.md", "core/Shape.md", "core/Color.md", "core/Mock.md",
		"core/test_utils-index.md", "logger/src-index.md", "utils/Helper.md",
	} {
		assert.Contains(t, tree, want)
	}
	for p := range tree {
		for _, kind := range cfg.KindDirs {
			assert.NotContains(t, p, "/"+kind+"/", "kind directory left behind: %s", p)
		}
	}
	// Flattening leaves emptied directories for the prune stage.
	assert.Contains(t, tree, "core/test_utils/")
	assert.Contains(t, tree, "logger/index/")
}

func TestFlattenModules_DeeplyNestedKindDirectory(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), map[string]string{
		"core/sub/deeper/interfaces/Deep.md": "# Deep\n",
	})

	res, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.APIRoot(), "core", "Deep.md"))
	assert.Equal(t, Substitutions{
		{Pattern: "core/sub/deeper/interfaces/Deep.md", Replacement: "Core/Deep.md"},
	}, res.Substitutions)
}

func TestFlattenModules_TopLevelFilesUntouched(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), map[string]string{
		"index.md":   "# API\n",
		"globals.md": "# Globals\n",
	})

	res, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)
	assert.Empty(t, res.Substitutions)
	assert.Equal(t, map[string]string{"index.md": "# API\n", "globals.md": "# Globals\n"}, readTree(t, cfg.APIRoot()))
}

func TestFlattenModules_CollisionOverwrites(t *testing.T) {
	cfg := newTestConfig(t)
	writeTree(t, cfg.APIRoot(), map[string]string{
		"core/classes/Foo.md":    "# Class Foo\n",
		"core/interfaces/Foo.md": "# Interface Foo\n",
	})

	_, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)

	// Kind directories are visited in lexical order, so interfaces wins.
	data, err := os.ReadFile(filepath.Join(cfg.APIRoot(), "core", "Foo.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Interface Foo\n", string(data))
}

func TestFlattenModules_CustomKindDirs(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.KindDirs = []string{"functions"}
	writeTree(t, cfg.APIRoot(), map[string]string{
		"core/functions/run.md": "# run\n",
		"core/classes/Foo.md":   "# Foo\n",
	})

	_, err := newTestProcessor(t, cfg).FlattenModules()
	require.NoError(t, err)

	tree := readTree(t, cfg.APIRoot())
	assert.Contains(t, tree, "core/run.md")
	assert.Contains(t, tree, "core/classes/Foo.md")
}
