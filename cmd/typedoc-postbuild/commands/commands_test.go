package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/config"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
)

// execute parses args like main does and runs the selected command.
func execute(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cli := &CLI{}
	out := &bytes.Buffer{}
	global := &Global{Out: out}

	parser, err := kong.New(cli,
		kong.Name("typedoc-postbuild"),
		kong.Bind(global),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return out, ctx.Run(cli)
}

// workspace creates a docs tree with one package and returns the temp root.
func workspace(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	files := map[string]string{
		"src/api/index.md":               "# API\n\n- [core](core/index.md)\n",
		"src/api/_media/logo.png":        "\x89PNG\x00",
		"src/api/core/index.md":          "# core\n\n- [Foo](classes/Foo.md)\n",
		"src/api/core/classes/Foo.md":    "# Class: Foo<T>\n",
		"src/api/core/interfaces/Bar.md": "# Interface: Bar\n\n[Foo](../classes/Foo.md)\n",
	}
	for rel, content := range files {
		full := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return base
}

func TestRun_DefaultCommandWithFlags(t *testing.T) {
	base := workspace(t)
	links := filepath.Join(base, ".typedoc", "api-links.json")
	report := filepath.Join(base, "out", "report.json")
	promFile := filepath.Join(base, "out", "typedoc.prom")

	out, err := execute(t,
		"--config", filepath.Join(base, "missing.yaml"),
		"--docs-dir", filepath.Join(base, "src"),
		"--links-output", links,
		"--report", report,
		"--metrics-textfile", promFile,
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Post-build complete: 2 pages moved")

	manifest, err := os.ReadFile(links)
	require.NoError(t, err)
	assert.Equal(t,
		`{"link":"/api/","text":"API","items":[{"link":"/api/Core/","text":"Core","items":[`+
			`{"link":"/api/Core/Bar","text":"Bar","items":[]},{"link":"/api/Core/Foo","text":"Foo","items":[]}],"collapsed":true}],"collapsed":true}`,
		string(manifest))

	foo, err := os.ReadFile(filepath.Join(base, "src", "api", "Core", "Foo.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Class: Foo&lt;T>\n", string(foo))
	assert.NoDirExists(t, filepath.Join(base, "src", "api", "_media"))

	reportData, err := os.ReadFile(report)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(reportData, &decoded))
	assert.NotEmpty(t, decoded["run_id"])

	promData, err := os.ReadFile(promFile)
	require.NoError(t, err)
	assert.Contains(t, string(promData), `typedoc_postbuild_run_outcomes_total{outcome="success"} 1`)
}

func TestRun_ConfigFile(t *testing.T) {
	base := workspace(t)
	t.Setenv("TYPEDOC_TEST_DOCS", filepath.Join(base, "src"))
	cfgPath := filepath.Join(base, "typedoc-postbuild.yaml")
	links := filepath.Join(base, "links.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(strings.Join([]string{
		"version: \"1\"",
		"docs_dir: ${TYPEDOC_TEST_DOCS}",
		"links_output: " + links,
		"link_base: /reference/",
		"manifest:",
		"  indent: true",
		"",
	}, "\n")), 0o600))

	_, err := execute(t, "--config", cfgPath, "run", "--skip-audit")
	require.NoError(t, err)

	data, err := os.ReadFile(links)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"link\": \"/reference/Core/Foo\"")
}

func TestRun_MissingAPIRootStillWritesMetrics(t *testing.T) {
	base := t.TempDir()
	promFile := filepath.Join(base, "typedoc.prom")

	_, err := execute(t,
		"--config", filepath.Join(base, "missing.yaml"),
		"run",
		"--docs-dir", filepath.Join(base, "nowhere"),
		"--metrics-textfile", promFile,
	)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	assert.Equal(t, 3, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))

	promData, readErr := os.ReadFile(promFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(promData), `typedoc_postbuild_run_outcomes_total{outcome="failed"} 1`)
}

func TestRun_InvalidOverride(t *testing.T) {
	base := workspace(t)

	_, err := execute(t,
		"--config", filepath.Join(base, "missing.yaml"),
		"run",
		"--docs-dir", filepath.Join(base, "src"),
		"--api-dir", "../escape",
	)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.DirExists(t, filepath.Join(base, "src", "api", "core", "classes"), "tree must be untouched")
}

func TestManifestCommand(t *testing.T) {
	base := t.TempDir()
	apiRoot := filepath.Join(base, "src", "api")
	require.NoError(t, os.MkdirAll(filepath.Join(apiRoot, "Core"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(apiRoot, "Core", "Foo.md"), []byte("# Foo\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(apiRoot, "Core", "index.md"), []byte("# Core\n"), 0o600))
	links := filepath.Join(base, "api-links.json")

	out, err := execute(t,
		"--config", filepath.Join(base, "missing.yaml"),
		"manifest",
		"--docs-dir", filepath.Join(base, "src"),
		"--links-output", links,
	)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Wrote 2 sidebar entries")

	data, err := os.ReadFile(links)
	require.NoError(t, err)
	assert.Equal(t,
		`{"link":"/api/","text":"API","items":[{"link":"/api/Core/","text":"Core","items":[{"link":"/api/Core/Foo","text":"Foo","items":[]}],"collapsed":true}],"collapsed":true}`,
		string(data))
	assert.FileExists(t, filepath.Join(apiRoot, "Core", "Foo.md"), "manifest does not modify the tree")
}

func TestInitCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "conf", "typedoc-postbuild.yaml")

	out, err := execute(t, "--config", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "initialized successfully")

	cfg, err := config.Load(cfgPath, false)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLinkBase, cfg.LinkBase)

	_, err = execute(t, "--config", cfgPath, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = execute(t, "--config", cfgPath, "init", "--force")
	require.NoError(t, err)
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, 0, config.LogFormatJSON).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())

	buf.Reset()
	newLogger(&buf, 0, config.LogFormatText).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
