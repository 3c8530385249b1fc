package postbuild

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// RemoveUnwanted deletes the configured generator leftovers, relative to the
// docs root. Paths that do not exist are skipped silently. It returns the paths
// that were actually removed.
func (p *Processor) RemoveUnwanted() ([]string, error) {
	removed := make([]string, 0, len(p.cfg.RemovePaths))
	for _, rel := range p.cfg.RemovePaths {
		full := filepath.Join(p.cfg.DocsDir, rel)
		if _, err := os.Lstat(full); os.IsNotExist(err) {
			p.log.Debug("Unwanted path already absent", logfields.Path(full))
			continue
		}
		if err := os.RemoveAll(full); err != nil {
			return removed, errors.FileSystemError(err, "failed to remove unwanted path", full).Build()
		}
		p.log.Debug("Removed unwanted path", logfields.Path(full))
		removed = append(removed, rel)
	}
	return removed, nil
}
