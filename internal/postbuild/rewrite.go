package postbuild

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
	"github.com/inful/mdfp"
)

// FileResult describes one file visited by the rewrite stage.
type FileResult struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Changed      bool   `json:"changed"`
	// Fingerprint identifies the final content so runs can be compared.
	Fingerprint string `json:"fingerprint"`
}

// RewriteLinks applies subs, in order, to every regular file under the API
// root. Files are visited in lexical order and only written when their content
// changes. Files containing NUL bytes are treated as binary and skipped.
func (p *Processor) RewriteLinks(ctx context.Context, subs Substitutions) ([]FileResult, error) {
	var results []FileResult

	err := filepath.WalkDir(p.apiRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.FileSystemError(walkErr, "failed to walk API docs", path).Build()
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := p.rewriteFile(path, subs)
		if err != nil {
			return err
		}
		if res != nil {
			results = append(results, *res)
		}
		return nil
	})
	return results, err
}

func (p *Processor) rewriteFile(path string, subs Substitutions) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to stat file", path).Build()
	}
	// #nosec G304 -- path comes from walking the configured API directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to read file", path).Build()
	}
	if bytes.IndexByte(data, 0) >= 0 {
		p.log.Debug("Skipping binary file", logfields.File(path))
		return nil, nil
	}

	updated, n := subs.Apply(string(data))
	rel, err := relSlash(p.apiRoot, path)
	if err != nil {
		rel = path
	}
	res := &FileResult{
		Path:         rel,
		Replacements: n,
		Changed:      updated != string(data),
		Fingerprint:  mdfp.CalculateFingerprintFromParts("", updated),
	}
	if !res.Changed {
		return res, nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, errors.WrapError(err, errors.CategoryRewrite, "failed to write rewritten file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	p.log.Debug("Rewrote links", logfields.File(rel), logfields.Count(n))
	return res, nil
}
