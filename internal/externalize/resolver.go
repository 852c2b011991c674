package externalize

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Host exposes the vault lookups the resolver needs.
type Host interface {
	// Links returns the raw wiki link strings of doc in source order.
	Links(doc string) ([]string, bool)
	// FirstLinkpathDest resolves a link path to a document, relative to
	// source.
	FirstLinkpathDest(linkpath, source string) (string, bool)
	// FrontMatter returns the parsed front matter of doc.
	FrontMatter(doc string) (map[string]any, bool)
}

// Notifier receives short user facing messages.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

// Resolver builds a LinkMap for the links of one document.
type Resolver struct {
	host   Host
	notify Notifier
	logger *log.Logger
	opts   Options
}

// NewResolver returns a Resolver. notify and logger may be nil.
func NewResolver(host Host, opts Options, notify Notifier, logger *log.Logger) *Resolver {
	return &Resolver{host: host, notify: notify, logger: logger, opts: opts}
}

// Resolve reads the configured field from every note linked by doc. An empty
// doc means there is no active document.
func (r *Resolver) Resolve(doc string) LinkMap {
	links := make(LinkMap)
	if doc == "" || r.host == nil {
		r.warn("No active file.")
		return links
	}

	raw, ok := r.host.Links(doc)
	if !ok || len(raw) == 0 {
		r.warn("No links found in the active file.")
		return links
	}

	field := r.opts.Field()
	seen := make(map[string]struct{}, len(raw))
	for _, link := range raw {
		target := TargetOf(link)
		if _, done := seen[target]; done {
			continue
		}
		seen[target] = struct{}{}

		url, ok := r.lookup(target, field)
		if !ok {
			continue
		}
		links[target] = url
	}

	if len(links) == 0 {
		r.warn(fmt.Sprintf("No '%s' values found in linked frontmatter.", field))
	}
	return links
}

func (r *Resolver) lookup(target, field string) (string, bool) {
	if target == "" {
		return "", false
	}

	dest, ok := r.host.FirstLinkpathDest(target, "/")
	if !ok {
		r.debug("unresolved link", "target", target)
		return "", false
	}

	fm, ok := r.host.FrontMatter(dest)
	if !ok {
		r.debug("no front matter", "target", target, "path", dest)
		return "", false
	}

	url := FieldValue(fm[field])
	if url == "" {
		r.debug("field missing", "target", target, "path", dest, "field", field)
		return "", false
	}

	r.debug("resolved link", "target", target, "url", url)
	return url, true
}

// FieldValue converts a decoded front matter value to a URL string. Lists
// yield their first non-empty scalar; maps and nulls yield "".
func FieldValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if _, nested := item.([]any); nested {
				continue
			}
			if s := FieldValue(item); s != "" {
				return s
			}
		}
		return ""
	case map[string]any:
		return ""
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

func (r *Resolver) warn(msg string) {
	if r.notify != nil {
		r.notify.Warn(msg)
	}
}

func (r *Resolver) debug(msg string, keyvals ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, keyvals...)
	}
}
