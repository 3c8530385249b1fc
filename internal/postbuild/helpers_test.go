package postbuild

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/config"
	"github.com/stretchr/testify/require"
)

// newTestConfig returns a defaulted config rooted in a temp dir, with the
// manifest written inside that dir too.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.DocsDir = filepath.Join(base, "src")
	cfg.LinksOutput = filepath.Join(base, ".typedoc", "api-links.json")
	require.NoError(t, os.MkdirAll(cfg.APIRoot(), 0o750))
	return cfg
}

func newTestProcessor(t *testing.T, cfg *config.Config) *Processor {
	t.Helper()
	return NewProcessor(cfg, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates files (slash-separated paths relative to root) with content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
}

// readTree returns every file below root keyed by slash path, plus the set of
// directories (keys ending in "/").
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		rel, relErr := filepath.Rel(root, path)
		require.NoError(t, relErr)
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		// #nosec G304 -- test fixture
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// typedocFixture is a small but representative typedoc-plugin-markdown output.
func typedocFixture() map[string]string {
	return map[string]string{
		"index.md":                        "# API\n\n- [core](core/index.md)\n- [utils](utils/index.md)\n",
		"_media/logo.png":                 "\x89PNG\x00\x01",
		"core/index.md":                   "# core\n\n- [Foo](classes/Foo.md)\n- [Shape](interfaces/Shape.md)\n- [Color](enumerations/Color.md)\n- [test-utils](test_utils/index.md)\n",
		"core/classes/Foo.md":             "# Class: Foo<T>\n\nImplements [Shape](../interfaces/Shape.md).\n\nBack to [core](../../core/index.md).\n",
		"core/interfaces/Shape.md":        "# Interface: Shape\n\nSee [Foo](../classes/Foo.md) and [Color](../enumerations/Color.md).\n",
		"core/enumerations/Color.md":      "# Enumeration: Color\n",
		"core/test_utils/index.md":        "# test_utils\n\n- [Mock](classes/Mock.md)\n",
		"core/test_utils/classes/Mock.md": "# Class: Mock\n\nSee [test_utils](../index.md).\n",
		"utils/index.md":                  "# utils\n\n- [Helper](classes/Helper.md)\n",
		"utils/classes/Helper.md":         "# Class: Helper\n\nUses [Foo](../../core/classes/Foo.md).\n",
		"logger/index/index.md":           "# logger/index\n",
	}
}
