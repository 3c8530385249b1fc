package markdown

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct found in a Markdown document.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsExternal reports whether the destination points outside the documentation tree.
func (l Link) IsExternal() bool {
	for _, prefix := range []string{"http://", "https://", "mailto:", "//"} {
		if len(l.Destination) >= len(prefix) && l.Destination[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
