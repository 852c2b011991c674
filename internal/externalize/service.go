package externalize

import "github.com/charmbracelet/log"

// Service runs the resolve-then-rewrite pipeline for the two command modes.
type Service struct {
	Host     Host
	Notifier Notifier
	Logger   *log.Logger
}

// Page externalizes the full content of doc. The leading front matter block
// is dropped unless opts.IncludeFrontmatter is set.
func (s *Service) Page(doc, content string, opts Options) string {
	if !opts.IncludeFrontmatter {
		content = StripFrontmatter(content)
	}
	return s.rewrite(doc, content, opts)
}

// Selection externalizes selected, resolving links against doc.
func (s *Service) Selection(doc, selected string, opts Options) string {
	return s.rewrite(doc, selected, opts)
}

func (s *Service) rewrite(doc, text string, opts Options) string {
	links := NewResolver(s.Host, opts, s.Notifier, s.Logger).Resolve(doc)
	if s.Logger != nil {
		s.Logger.Debug("externalizing", "doc", doc, "resolved", len(links), "field", opts.Field())
	}
	return Rewrite(text, links)
}
