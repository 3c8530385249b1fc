package postbuild

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/config"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
)

// Processor performs the individual tree operations for one API directory.
// Each method is a stage of the pipeline and can be used on its own.
type Processor struct {
	cfg     *config.Config
	apiRoot string
	kinds   map[string]struct{}
	log     *slog.Logger
}

// NewProcessor creates a processor for cfg.APIRoot().
func NewProcessor(cfg *config.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	kinds := make(map[string]struct{}, len(cfg.KindDirs))
	for _, k := range cfg.KindDirs {
		kinds[k] = struct{}{}
	}
	return &Processor{
		cfg:     cfg,
		apiRoot: cfg.APIRoot(),
		kinds:   kinds,
		log:     logger,
	}
}

// APIRoot returns the directory the processor mutates.
func (p *Processor) APIRoot() string {
	return p.apiRoot
}

func (p *Processor) isKindDir(name string) bool {
	_, ok := p.kinds[name]
	return ok
}

// checkAPIRoot fails when the API directory is missing or not a directory.
func (p *Processor) checkAPIRoot() error {
	info, err := os.Stat(p.apiRoot)
	if os.IsNotExist(err) {
		return errors.NewError(errors.CategoryNotFound, "API docs directory not found").
			Fatal().
			WithContext("path", p.apiRoot).
			Build()
	}
	if err != nil {
		return errors.FileSystemError(err, "failed to stat API docs directory", p.apiRoot).Build()
	}
	if !info.IsDir() {
		return errors.ValidationError("API docs path is not a directory").
			WithContext("path", p.apiRoot).
			Build()
	}
	return nil
}

// readDir lists dir sorted by name (os.ReadDir guarantees the order).
func readDir(dir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FileSystemError(err, "failed to read directory", dir).Build()
	}
	return entries, nil
}

// move renames from to to. An existing file at the destination is replaced and
// reported, matching what a plain rename does on POSIX systems.
func (p *Processor) move(from, to string) error {
	if info, err := os.Lstat(to); err == nil && !info.IsDir() {
		p.log.Warn("Overwriting existing file", logfields.From(from), logfields.To(to))
	}
	if err := os.Rename(from, to); err != nil {
		return errors.FileSystemError(err, "rename failed", from).
			WithContext("to", to).
			Build()
	}
	return nil
}
