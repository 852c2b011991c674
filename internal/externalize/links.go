package externalize

import "strings"

// DefaultFieldName is the front matter key read when none is configured.
const DefaultFieldName = "url"

// LinkMap maps a normalized link target to the URL found in the target's
// front matter.
type LinkMap map[string]string

// Options carries the settings for one externalize invocation.
type Options struct {
	FieldName          string
	IncludeFrontmatter bool
}

// Field returns the trimmed field name, falling back to DefaultFieldName.
func (o Options) Field() string {
	if field := strings.TrimSpace(o.FieldName); field != "" {
		return field
	}
	return DefaultFieldName
}

// LinkRef is a wiki link split into its parts.
type LinkRef struct {
	// Raw is the link text between the brackets.
	Raw string
	// Linkpath is everything before the first "|", fragment included.
	Linkpath string
	Alias    string
	HasAlias bool
}

// ParseLink splits the inner text of a wiki link on its first "|".
func ParseLink(raw string) LinkRef {
	ref := LinkRef{Raw: raw, Linkpath: raw}
	if pipe := strings.IndexByte(raw, '|'); pipe >= 0 {
		ref.Linkpath = raw[:pipe]
		ref.Alias = raw[pipe+1:]
		ref.HasAlias = true
	}
	return ref
}

// Target is the note name the link points at: alias removed first, then
// any heading or block fragment.
func (r LinkRef) Target() string {
	return stripFragment(r.Linkpath)
}

// Display is the text shown for the link once it is no longer a wiki link.
func (r LinkRef) Display() string {
	if r.Alias != "" {
		return r.Alias
	}
	return displayLinkpath(r.Linkpath)
}

// TargetOf normalizes a raw link string to its target identity.
func TargetOf(raw string) string {
	return ParseLink(raw).Target()
}

func stripFragment(linkpath string) string {
	if idx := strings.IndexAny(linkpath, "#^"); idx >= 0 {
		return linkpath[:idx]
	}
	return linkpath
}

// displayLinkpath turns "Page#Heading" into "Page" and "#Heading" or
// "^block" into "Heading" or "block".
func displayLinkpath(linkpath string) string {
	if linkpath == "" {
		return ""
	}
	if linkpath[0] == '#' || linkpath[0] == '^' {
		return linkpath[1:]
	}
	return stripFragment(linkpath)
}
