package postbuild

import (
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// CapitalizeResult is what CapitalizeDirs changed and recorded.
type CapitalizeResult struct {
	Substitutions Substitutions `json:"-"`
	Renames       []Move        `json:"renames"`
}

// CapitalizeDirs renames every top-level package directory so its name starts
// with an upper-case letter and records a substitution for the package index.
func (p *Processor) CapitalizeDirs() (*CapitalizeResult, error) {
	entries, err := readDir(p.apiRoot)
	if err != nil {
		return nil, err
	}

	res := &CapitalizeResult{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		newName := capitalize(name)
		if newName == name {
			continue
		}

		from := filepath.Join(p.apiRoot, name)
		to := filepath.Join(p.apiRoot, newName)
		if _, err := os.Lstat(to); err == nil && !sameFile(from, to) {
			return res, errors.ValidationError("capitalized package directory already exists").
				WithContext("path", from).
				WithContext("to", to).
				Build()
		}
		if err := os.Rename(from, to); err != nil {
			return res, errors.FileSystemError(err, "failed to capitalize package directory", from).
				WithContext("to", to).
				Build()
		}

		res.Substitutions.Add(path.Join(name, p.cfg.IndexFile), path.Join(newName, p.cfg.IndexFile))
		res.Renames = append(res.Renames, Move{From: name, To: newName})
		p.log.Debug("Capitalized package directory", logfields.From(name), logfields.To(newName))
	}
	return res, nil
}

// sameFile reports whether a and b resolve to the same directory, which is the
// case for a pure case change on a case-insensitive filesystem.
func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
