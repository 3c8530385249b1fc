package postbuild

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// Link is a sidebar navigation node. The root represents the API section, its
// children the package directories and their children the documented symbols.
type Link struct {
	Link      string `json:"link"`
	Text      string `json:"text"`
	Items     []Link `json:"items"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// Count returns the number of nodes below l.
func (l *Link) Count() int {
	n := len(l.Items)
	for i := range l.Items {
		n += l.Items[i].Count()
	}
	return n
}

// BuildManifest walks the top level of the API root and builds the sidebar tree.
// Index pages and secondary entry points are left out of each package's items.
func (p *Processor) BuildManifest() (*Link, error) {
	base := p.cfg.LinkBase
	root := &Link{Link: base, Text: p.cfg.LinkRootText, Collapsed: true, Items: []Link{}}

	entries, err := readDir(p.apiRoot)
	if err != nil {
		return nil, err
	}

	markers := make([]string, 0, len(p.cfg.SecondaryEntryPoints))
	for _, ep := range p.cfg.SecondaryEntryPoints {
		markers = append(markers, entryPointMarker(ep))
	}

	for _, dir := range entries {
		if !dir.IsDir() {
			continue
		}
		pkg := Link{Text: dir.Name(), Link: base + dir.Name() + "/", Collapsed: true, Items: []Link{}}

		files, err := readDir(filepath.Join(p.apiRoot, dir.Name()))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.IsDir() || !p.isSidebarPage(f.Name(), markers) {
				continue
			}
			name := symbolName(f.Name())
			pkg.Items = append(pkg.Items, Link{
				Text:  name,
				Link:  base + dir.Name() + "/" + name,
				Items: []Link{},
			})
		}
		root.Items = append(root.Items, pkg)
	}
	return root, nil
}

func (p *Processor) isSidebarPage(file string, markers []string) bool {
	if strings.HasPrefix(file, ".") || strings.HasSuffix(file, p.cfg.IndexFile) {
		return false
	}
	for _, m := range markers {
		if strings.Contains(file, m) {
			return false
		}
	}
	return true
}

// MarshalManifest serializes the manifest. HTML characters are not escaped so
// symbol names appear verbatim.
func MarshalManifest(root *Link, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if !indent {
		out = bytes.TrimSuffix(out, []byte("\n"))
	}
	return out, nil
}

// ExportManifest builds the manifest and writes it to the configured output path.
func (p *Processor) ExportManifest() (*Link, error) {
	root, err := p.BuildManifest()
	if err != nil {
		return nil, err
	}
	data, err := MarshalManifest(root, p.cfg.Manifest.Indent)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryManifest, "failed to encode link manifest").Fatal().Build()
	}

	out := p.cfg.LinksOutput
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return nil, errors.FileSystemError(err, "failed to create manifest directory", filepath.Dir(out)).Build()
	}
	if err := os.WriteFile(out, data, 0o644); err != nil { // #nosec G306 -- manifest is served by the site build
		return nil, errors.FileSystemError(err, "failed to write link manifest", out).Build()
	}
	p.log.Debug("Wrote link manifest", logfields.Path(out), logfields.Count(root.Count()))
	return root, nil
}
