package postbuild

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// capitalize upper-cases the first rune of name.
func capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// relSlash returns target relative to base using forward slashes, the form
// links take inside the generated markdown.
func relSlash(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// nestedIndexName returns the name a nested index file is given when it is
// moved up to its package root. The parent directory name is used as prefix,
// except when the parent itself is named after the index file.
func nestedIndexName(parent, indexFile string) string {
	stem := strings.TrimSuffix(indexFile, filepath.Ext(indexFile))
	if parent == stem {
		return "src-" + indexFile
	}
	return parent + "-" + indexFile
}

// entryPointMarker turns a secondary entry point suffix such as "-test_utils.md"
// into the marker typedoc uses in file names ("-test-utils").
func entryPointMarker(entryPoint string) string {
	marker := strings.Replace(entryPoint, "_", "-", 1)
	return strings.Replace(marker, ".md", "", 1)
}

// symbolName strips everything from the first '.' of a page file name.
func symbolName(file string) string {
	name, _, _ := strings.Cut(file, ".")
	return name
}
