package postbuild

import "strings"

// Substitution is a literal find/replace pair applied to file contents.
// Patterns are never interpreted as regular expressions.
type Substitution struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Substitutions is an ordered list; earlier entries are applied first.
type Substitutions []Substitution

// Add appends a substitution. Empty and identity patterns are ignored.
func (s *Substitutions) Add(pattern, replacement string) {
	if pattern == "" || pattern == replacement {
		return
	}
	*s = append(*s, Substitution{Pattern: pattern, Replacement: replacement})
}

// Apply runs every substitution over content in order and returns the result
// together with the number of replaced occurrences.
func (s Substitutions) Apply(content string) (string, int) {
	total := 0
	for _, sub := range s {
		n := strings.Count(content, sub.Pattern)
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, sub.Pattern, sub.Replacement)
		total += n
	}
	return content, total
}

// Concat returns a new list holding s followed by others.
func (s Substitutions) Concat(others ...Substitutions) Substitutions {
	n := len(s)
	for _, o := range others {
		n += len(o)
	}
	out := make(Substitutions, 0, n)
	out = append(out, s...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// LinkCleanups returns the generic fixes applied after the recorded path
// substitutions: kind directory segments are dropped, redundant parent
// traversals collapsed, the doubled index link repaired, and '<' escaped so the
// site generator does not read type parameters as unclosed HTML tags.
func LinkCleanups(kindDirs []string) Substitutions {
	cleanups := make(Substitutions, 0, len(kindDirs)+5)
	for _, kind := range kindDirs {
		cleanups.Add(kind+"/", "./")
	}
	cleanups.Add("../../../", "../")
	cleanups.Add("../../", "../")
	cleanups.Add("index/index", "index")
	cleanups.Add(".././", "./")
	cleanups.Add("<", "&lt;")
	return cleanups
}
