package postbuild

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// PruneEmptyDirs removes every directory below the API root that has no
// entries. Children are handled before their parent, so a directory whose only
// content was empty directories is removed as well. The API root itself is kept.
// Returned paths are relative to the API root.
func (p *Processor) PruneEmptyDirs() ([]string, error) {
	var pruned []string
	if err := p.prune(p.apiRoot, &pruned); err != nil {
		return pruned, err
	}
	return pruned, nil
}

func (p *Processor) prune(dir string, pruned *[]string) error {
	entries, err := readDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := p.pruneChild(filepath.Join(dir, e.Name()), pruned); err != nil {
			return err
		}
	}
	return nil
}

// pruneChild prunes below child and then removes child when it is empty.
func (p *Processor) pruneChild(child string, pruned *[]string) error {
	if err := p.prune(child, pruned); err != nil {
		return err
	}
	entries, err := readDir(child)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(child); err != nil {
		return errors.FileSystemError(err, "failed to remove empty directory", child).Build()
	}

	rel, err := relSlash(p.apiRoot, child)
	if err != nil {
		rel = child
	}
	*pruned = append(*pruned, rel)
	p.log.Debug("Removed empty directory", logfields.Path(rel))
	return nil
}
