package postbuild

import (
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// Move records a file relocated by the flattener.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FlattenResult is what FlattenModules changed and recorded.
type FlattenResult struct {
	Substitutions Substitutions `json:"-"`
	// Moves lists pages lifted out of kind directories, relative to the API root.
	Moves []Move `json:"moves"`
	// IndexRenames lists nested index files moved to their package root.
	IndexRenames []Move `json:"index_renames"`
}

// FlattenModules flattens every top-level package directory.
//
// Pages inside a kind directory (classes/, interfaces/, enumerations/) at any
// depth are moved to the package root and the kind directory is deleted. Nested
// index files are moved to the package root under a name derived from their
// parent directory. A substitution is recorded for every relocation so links to
// the old location can be rewritten later.
func (p *Processor) FlattenModules() (*FlattenResult, error) {
	entries, err := readDir(p.apiRoot)
	if err != nil {
		return nil, err
	}

	res := &FlattenResult{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pkgRoot := filepath.Join(p.apiRoot, e.Name())
		w := &packageWalker{p: p, pkgRoot: pkgRoot, pkgName: e.Name(), res: res}
		if err := w.dig(pkgRoot); err != nil {
			return res, err
		}
	}
	return res, nil
}

// packageWalker carries the state of flattening a single package.
type packageWalker struct {
	p       *Processor
	pkgRoot string
	pkgName string
	res     *FlattenResult
}

func (w *packageWalker) dig(current string) error {
	entries, err := readDir(current)
	if err != nil {
		return err
	}

	for _, e := range entries {
		name := e.Name()
		full := filepath.Join(current, name)
		switch {
		case e.IsDir() && w.p.isKindDir(name):
			if err := w.liftKindDir(current, name); err != nil {
				return err
			}
		case e.IsDir():
			if err := w.dig(full); err != nil {
				return err
			}
		case name == w.p.cfg.IndexFile:
			if err := w.liftNestedIndex(full); err != nil {
				return err
			}
		}
	}
	return nil
}

// liftKindDir moves every entry of current/kind into the package root and
// removes the kind directory.
func (w *packageWalker) liftKindDir(current, kind string) error {
	kindPath := filepath.Join(current, kind)
	rel, err := relSlash(w.pkgRoot, current)
	if err != nil {
		return errors.InternalError("kind directory outside package").WithCause(err).WithContext("path", kindPath).Build()
	}
	// Links refer to pages by their path from the API root: "core/classes/Foo.md".
	linkDir := path.Join(w.pkgName, rel)
	target := capitalize(w.pkgName)

	files, err := readDir(kindPath)
	if err != nil {
		return err
	}
	for _, f := range files {
		from := filepath.Join(kindPath, f.Name())
		to := filepath.Join(w.pkgRoot, f.Name())
		if err := w.p.move(from, to); err != nil {
			return err
		}

		oldRef := path.Join(linkDir, kind, f.Name())
		newRef := path.Join(target, f.Name())
		w.res.Substitutions.Add(oldRef, newRef)
		w.res.Moves = append(w.res.Moves, Move{From: oldRef, To: path.Join(w.pkgName, f.Name())})
		w.p.log.Debug("Flattened page", logfields.Package(w.pkgName), logfields.From(oldRef), logfields.To(newRef))
	}

	if err := os.RemoveAll(kindPath); err != nil {
		return errors.FileSystemError(err, "failed to remove kind directory", kindPath).Build()
	}
	return nil
}

// liftNestedIndex moves an index file found below the package root up to the
// package root. The package's own index file is left alone.
func (w *packageWalker) liftNestedIndex(full string) error {
	rel, err := relSlash(w.pkgRoot, full)
	if err != nil {
		return errors.InternalError("index file outside package").WithCause(err).WithContext("path", full).Build()
	}
	dir := path.Dir(rel)
	if dir == "." {
		return nil
	}

	newName := nestedIndexName(path.Base(dir), w.p.cfg.IndexFile)
	if err := w.p.move(full, filepath.Join(w.pkgRoot, newName)); err != nil {
		return err
	}

	w.res.Substitutions.Add(rel, "./"+newName)
	w.res.IndexRenames = append(w.res.IndexRenames, Move{
		From: path.Join(w.pkgName, rel),
		To:   path.Join(w.pkgName, newName),
	})
	w.p.log.Debug("Renamed nested index", logfields.Package(w.pkgName), logfields.From(rel), logfields.To(newName))
	return nil
}
