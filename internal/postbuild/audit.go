package postbuild

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/typedoc-postbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/logfields"
	"git.home.luguber.info/inful/typedoc-postbuild/internal/markdown"
)

// FindingReason classifies an audit finding.
type FindingReason string

const (
	// ReasonKindSegment marks a destination that still walks through a kind directory.
	ReasonKindSegment FindingReason = "kind_segment"
	// ReasonStalePath marks a destination that still contains a relocated page path.
	ReasonStalePath FindingReason = "stale_path"
)

// AuditFinding is a link destination that still points at a location the
// pipeline removed.
type AuditFinding struct {
	File        string        `json:"file"`
	Destination string        `json:"destination"`
	Reason      FindingReason `json:"reason"`
}

// AuditLinks parses every markdown file under the API root and reports link
// destinations that still reference a kind directory or one of the relocated
// paths in recorded. It reads only; nothing is modified.
func (p *Processor) AuditLinks(recorded Substitutions) ([]AuditFinding, error) {
	var findings []AuditFinding

	err := filepath.WalkDir(p.apiRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errors.FileSystemError(walkErr, "failed to walk API docs", path).Build()
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}
		// #nosec G304 -- path comes from walking the configured API directory
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.FileSystemError(err, "failed to read file", path).Build()
		}
		rel, err := relSlash(p.apiRoot, path)
		if err != nil {
			rel = path
		}

		for _, link := range markdown.ExtractLinks(data) {
			if link.IsExternal() {
				continue
			}
			if reason, bad := p.checkDestination(link.Destination, recorded); bad {
				findings = append(findings, AuditFinding{File: rel, Destination: link.Destination, Reason: reason})
				p.log.Warn("Link still points at a removed location",
					logfields.File(rel), logfields.Destination(link.Destination), slog.String("reason", string(reason)))
			}
		}
		return nil
	})
	return findings, err
}

func (p *Processor) checkDestination(dest string, recorded Substitutions) (FindingReason, bool) {
	target, _, _ := strings.Cut(dest, "#")
	segments := strings.Split(target, "/")
	for _, seg := range segments[:len(segments)-1] {
		if p.isKindDir(seg) {
			return ReasonKindSegment, true
		}
	}
	for _, sub := range recorded {
		if target == sub.Pattern || strings.HasSuffix(target, "/"+sub.Pattern) {
			return ReasonStalePath, true
		}
	}
	return "", false
}
