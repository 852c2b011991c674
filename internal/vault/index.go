package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Paintersrp/linkext/internal/pathutil"
)

type document struct {
	Path        string
	FrontMatter map[string]any
	Links       []string
	ModifiedAt  time.Time
}

// Index stores the link and front matter metadata of the notes in a vault.
// It answers the three lookups externalizing needs: the links of a note,
// where a link path points, and a note's front matter.
type Index struct {
	root string
	cfg  Config
	docs map[string]document
	// aliases maps lowercase note identifiers (relative paths, basenames,
	// and stemmed names) to their canonical on-disk path.
	aliases map[string]string
}

// NewIndex constructs an empty index rooted at the provided directory.
func NewIndex(root string, cfg Config) *Index {
	// normalize joins vault-relative paths onto root, so it must not be
	// relative itself.
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Index{
		root:    filepath.Clean(root),
		cfg:     cfg,
		docs:    make(map[string]document),
		aliases: make(map[string]string),
	}
}

// Build replaces the index contents using the provided note paths.
func (idx *Index) Build(paths []string) error {
	idx.docs = make(map[string]document, len(paths))
	for _, p := range paths {
		canonical := idx.normalize(p)
		if canonical == "" {
			continue
		}

		if idx.shouldIgnore(canonical) {
			continue
		}

		doc, err := idx.loadDocument(canonical)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if idx.cfg.Logger != nil {
					idx.cfg.Logger.Debug("skipping missing note", "path", canonical)
				}
				continue
			}
			return fmt.Errorf("vault: indexing %s: %w", canonical, err)
		}
		idx.docs[canonical] = doc
	}
	idx.aliases = idx.buildAliases()
	return nil
}

// Canonical returns the absolute, cleaned path of an indexed note, or "" when
// the note is not indexed.
func (idx *Index) Canonical(path string) string {
	canonical := idx.normalize(path)
	if _, ok := idx.docs[canonical]; ok {
		return canonical
	}
	return ""
}

// Links returns the wiki links of doc in the order they appear.
func (idx *Index) Links(doc string) ([]string, bool) {
	d, ok := idx.docs[idx.normalize(doc)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), d.Links...), true
}

// FrontMatter returns the decoded front matter of doc. Notes without a front
// matter block, or with one that failed to parse, report false.
func (idx *Index) FrontMatter(doc string) (map[string]any, bool) {
	d, ok := idx.docs[idx.normalize(doc)]
	if !ok || d.FrontMatter == nil {
		return nil, false
	}
	return d.FrontMatter, true
}

// FirstLinkpathDest resolves linkpath to an indexed note. Lookups are case
// insensitive and try the vault relative path before the basename. When
// source is a note path, linkpath is also tried relative to its directory.
// A source of "" or "/" resolves from the vault root only.
func (idx *Index) FirstLinkpathDest(linkpath, source string) (string, bool) {
	if len(idx.aliases) == 0 {
		return "", false
	}

	cleaned := pathutil.CleanLinkpath(linkpath)
	if cleaned == "" || pathutil.IsExternal(cleaned) {
		return "", false
	}

	if resolved := idx.resolveAlias(cleaned); resolved != "" {
		return resolved, true
	}

	if source == "" || source == "/" {
		return "", false
	}

	if relative := idx.resolveRelativeLink(idx.normalize(source), cleaned); relative != "" {
		if resolved := idx.resolveAlias(relative); resolved != "" {
			return resolved, true
		}
	}
	return "", false
}

// Metadata represents the exposed metadata for an indexed document.
type Metadata struct {
	Path       string
	Title      string
	Links      []string
	ModifiedAt time.Time
}

// Documents returns metadata for every indexed note sorted by path.
func (idx *Index) Documents() []Metadata {
	if len(idx.docs) == 0 {
		return nil
	}

	out := make([]Metadata, 0, len(idx.docs))
	for _, doc := range idx.docs {
		out = append(out, Metadata{
			Path:       doc.Path,
			Title:      doc.title(),
			Links:      append([]string(nil), doc.Links...),
			ModifiedAt: doc.ModifiedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func (d document) title() string {
	if t, ok := d.FrontMatter["title"].(string); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
}

func (idx *Index) normalize(path string) string {
	cleaned := pathutil.NormalizePath(path)
	if cleaned == "." || cleaned == "" {
		return ""
	}
	if filepath.IsAbs(cleaned) {
		return cleaned
	}
	return filepath.Join(idx.root, cleaned)
}

func (idx *Index) shouldIgnore(path string) bool {
	rel, err := pathutil.VaultRelative(idx.root, path)
	if err != nil {
		return false
	}
	for _, segment := range strings.Split(rel, "/") {
		for _, ignored := range idx.cfg.IgnoredFolders {
			if ignored == "" {
				continue
			}
			if strings.EqualFold(segment, ignored) {
				return true
			}
		}
	}
	return false
}

func (idx *Index) loadDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return document{}, err
	}

	fm, body := SplitFrontMatter(data)
	fields, err := ParseFrontMatter(fm)
	if err != nil {
		if idx.cfg.Logger != nil {
			idx.cfg.Logger.Warn("skipping unparsable front matter", "path", path, "err", err)
		}
		fields = nil
	}

	return document{
		Path:        filepath.Clean(path),
		FrontMatter: fields,
		Links:       ExtractLinks(body),
		ModifiedAt:  info.ModTime().UTC(),
	}, nil
}

// buildAliases registers each note under its relative path, basename and
// their extensionless stems. Notes are visited shortest relative path first
// so that a name shared by several notes resolves to the one closest to the
// vault root.
func (idx *Index) buildAliases() map[string]string {
	type entry struct{ rel, path string }

	entries := make([]entry, 0, len(idx.docs))
	for path := range idx.docs {
		rel, err := pathutil.VaultRelative(idx.root, path)
		if err != nil {
			rel = filepath.ToSlash(path)
		}
		entries = append(entries, entry{rel: rel, path: path})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].rel) != len(entries[j].rel) {
			return len(entries[i].rel) < len(entries[j].rel)
		}
		return entries[i].rel < entries[j].rel
	})

	aliases := make(map[string]string, len(entries)*4)
	for _, e := range entries {
		addAlias(aliases, e.rel, e.path)
		addAlias(aliases, filepath.Base(e.path), e.path)
	}
	return aliases
}

func addAlias(aliases map[string]string, candidate, path string) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return
	}
	normalized := strings.ToLower(filepath.ToSlash(candidate))
	if _, taken := aliases[normalized]; !taken {
		aliases[normalized] = path
	}

	if ext := filepath.Ext(normalized); ext != "" {
		stem := strings.TrimSuffix(normalized, ext)
		if _, taken := aliases[stem]; stem != "" && !taken {
			aliases[stem] = path
		}
	}
}

func (idx *Index) resolveAlias(path string) string {
	normalized := strings.ToLower(filepath.ToSlash(path))
	if normalized == "" {
		return ""
	}
	if resolved, ok := idx.aliases[normalized]; ok {
		return resolved
	}
	return ""
}

func (idx *Index) resolveRelativeLink(sourcePath, link string) string {
	if sourcePath == "" || link == "" {
		return ""
	}

	joined := filepath.Join(filepath.Dir(sourcePath), filepath.FromSlash(link))
	rel, err := pathutil.VaultRelative(idx.root, joined)
	if err != nil || rel == "." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}
