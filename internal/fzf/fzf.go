package fzf

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/linkext/internal/cache"
	"github.com/Paintersrp/linkext/internal/pathutil"
	"github.com/Paintersrp/linkext/internal/render"
	"github.com/Paintersrp/linkext/internal/vault"
)

// ErrNoSelection is returned when the finder is closed without a choice.
var ErrNoSelection = errors.New("no file selected")

type previewKey struct {
	index, width int
}

// FuzzyFinder picks one note out of the indexed vault documents.
type FuzzyFinder struct {
	vaultDir string
	Header   string
	docs     []vault.Metadata
	previews *cache.LRUCache[previewKey, string]
}

func NewFuzzyFinder(vaultDir, header string, docs []vault.Metadata) *FuzzyFinder {
	return &FuzzyFinder{
		vaultDir: vaultDir,
		Header:   header,
		docs:     docs,
		previews: cache.NewLRUCache[previewKey, string](32),
	}
}

// Run opens the finder and returns the path of the chosen note.
func (f *FuzzyFinder) Run(query string) (string, error) {
	if len(f.docs) == 0 {
		return "", fmt.Errorf("no notes found in %s", f.vaultDir)
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.docs, func(i int) string {
		return f.label(i)
	}, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("error selecting file: %w", err)
	}

	return f.docs[idx].Path, nil
}

// label formats one finder row as the note title, its vault relative path
// and how many wiki links it carries.
func (f *FuzzyFinder) label(i int) string {
	doc := f.docs[i]
	rel, err := pathutil.VaultRelative(f.vaultDir, doc.Path)
	if err != nil {
		rel = doc.Path
	}

	switch n := len(doc.Links); n {
	case 0:
		return fmt.Sprintf("%s [%s] [No links]", doc.Title, rel)
	case 1:
		return fmt.Sprintf("%s [%s] [1 link]", doc.Title, rel)
	default:
		return fmt.Sprintf("%s [%s] [%d links]", doc.Title, rel, n)
	}
}

// renderMarkdownPreview is called on every cursor move, so rendered notes
// are cached per width.
func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i < 0 || i >= len(f.docs) {
		return ""
	}

	key := previewKey{index: i, width: w}
	if preview, ok := f.previews.Get(key); ok {
		return preview
	}
	preview := render.FilePreview(f.docs[i].Path, w)
	f.previews.Put(key, preview)
	return preview
}
