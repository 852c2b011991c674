package externalize

import "regexp"

var (
	wikiLinkPattern    = regexp.MustCompile(`\[\[(.+?)\]\]`)
	frontmatterPattern = regexp.MustCompile(`^---\n[\s\S]*?\n---\n`)
)

// Rewrite replaces every wiki link in text. Links whose target is in links
// become markdown links, the rest become their display text.
func Rewrite(text string, links LinkMap) string {
	return wikiLinkPattern.ReplaceAllStringFunc(text, func(match string) string {
		ref := ParseLink(match[2 : len(match)-2])
		display := ref.Display()

		url, ok := links[ref.Target()]
		if !ok || url == "" {
			return display
		}
		return "[" + display + "](" + url + ")"
	})
}

// StripFrontmatter removes a leading "---" delimited block.
func StripFrontmatter(text string) string {
	loc := frontmatterPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[loc[1]:]
}
