package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeNote(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
	return path
}

func buildIndex(t *testing.T, dir string, cfg Config, paths ...string) *Index {
	t.Helper()
	idx := NewIndex(dir, cfg)
	if err := idx.Build(paths); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return idx
}

func TestIndexLinksKeepSourceOrderAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	doc := writeNote(t, dir, "doc.md", "---\nurl: self\n---\n[[B]] then [[A|alias]] and [[B#h]] and [[B]]\n")

	idx := buildIndex(t, dir, Config{}, doc)

	links, ok := idx.Links("doc.md")
	if !ok {
		t.Fatalf("expected doc.md to be indexed")
	}
	want := []string{"B", "A|alias", "B#h", "B"}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("expected links %v, got %v", want, links)
	}

	if _, ok := idx.Links("missing.md"); ok {
		t.Fatalf("expected unknown note to report false")
	}
}

func TestIndexLinksSkipCode(t *testing.T) {
	dir := t.TempDir()
	content := "[[Real]]\n\n```\n[[Fenced]]\n```\n\n    [[Indented]]\n\nInline `[[Span]]` and [[After]]\n"
	doc := writeNote(t, dir, "doc.md", content)

	idx := buildIndex(t, dir, Config{}, doc)

	links, _ := idx.Links(doc)
	want := []string{"Real", "After"}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("expected links %v, got %v", want, links)
	}
}

func TestIndexFrontMatter(t *testing.T) {
	dir := t.TempDir()
	withURL := writeNote(t, dir, "a.md", "---\nurl: https://a.example\ntags: [x, y]\ncount: 3\n---\nbody")
	without := writeNote(t, dir, "b.md", "no front matter")
	broken := writeNote(t, dir, "c.md", "---\nurl: [unterminated\n---\nbody")
	empty := writeNote(t, dir, "d.md", "---\n---\nbody")

	idx := buildIndex(t, dir, Config{}, withURL, without, broken, empty)

	fm, ok := idx.FrontMatter(withURL)
	if !ok {
		t.Fatalf("expected front matter for a.md")
	}
	if fm["url"] != "https://a.example" {
		t.Fatalf("expected url field, got %#v", fm["url"])
	}
	if fm["count"] != 3 {
		t.Fatalf("expected count 3, got %#v", fm["count"])
	}
	if !reflect.DeepEqual(fm["tags"], []any{"x", "y"}) {
		t.Fatalf("expected tags sequence, got %#v", fm["tags"])
	}

	for _, path := range []string{without, broken, empty} {
		if _, ok := idx.FrontMatter(path); ok {
			t.Fatalf("expected no front matter for %s", filepath.Base(path))
		}
	}
}

func TestIndexFirstLinkpathDest(t *testing.T) {
	dir := t.TempDir()
	root := writeNote(t, dir, "Page.md", "root")
	nested := writeNote(t, dir, "deep/Page.md", "nested")
	other := writeNote(t, dir, "notes/Other Note.md", "other")
	sibling := writeNote(t, dir, "notes/sub/Sibling.md", "sibling")

	idx := buildIndex(t, dir, Config{}, nested, root, other, sibling)

	tests := map[string]struct {
		link   string
		source string
		want   string
		ok     bool
	}{
		"basename prefers shortest path": {link: "Page", source: "/", want: root, ok: true},
		"relative path":                  {link: "deep/Page", source: "/", want: nested, ok: true},
		"case insensitive":               {link: "other note", source: "/", want: other, ok: true},
		"with extension":                 {link: "Other Note.md", source: "/", want: other, ok: true},
		"missing":                        {link: "Nope", source: "/", ok: false},
		"external":                       {link: "https://example.org", source: "/", ok: false},
		"relative to source":             {link: "sub/Sibling", source: other, want: sibling, ok: true},
		"relative ignored from root":     {link: "sub/Sibling", source: "/", ok: false},
		"empty":                          {link: "", source: "/", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := idx.FirstLinkpathDest(tt.link, tt.source)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("FirstLinkpathDest(%q) = (%q, %v), want (%q, %v)", tt.link, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIndexIgnoredFolders(t *testing.T) {
	dir := t.TempDir()
	kept := writeNote(t, dir, "keep.md", "[[x]]")
	ignored := writeNote(t, dir, "Templates/skip.md", "[[y]]")

	idx := buildIndex(t, dir, Config{IgnoredFolders: []string{"templates"}}, kept, ignored)

	if _, ok := idx.Links(ignored); ok {
		t.Fatalf("expected ignored folder to be skipped")
	}
	if got := len(idx.Documents()); got != 1 {
		t.Fatalf("expected one indexed document, got %d", got)
	}
}

func TestIndexCanonical(t *testing.T) {
	dir := t.TempDir()
	path := writeNote(t, dir, "notes/note.md", "body")

	idx := buildIndex(t, dir, Config{}, path)

	if got := idx.Canonical("notes/note.md"); got != path {
		t.Fatalf("expected relative path to map to %q, got %q", path, got)
	}
	if got := idx.Canonical(path); got != path {
		t.Fatalf("expected absolute path to map to itself, got %q", got)
	}
	if got := idx.Canonical("notes/other.md"); got != "" {
		t.Fatalf("expected unknown note to be empty, got %q", got)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func TestIndexRelativeRoot(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "doc.md", "[[other]]\n")
	writeNote(t, dir, "other.md", "---\nurl: https://other.example\n---\n")

	chdir(t, filepath.Dir(dir))
	idx := buildIndex(t, filepath.Join(".", filepath.Base(dir)), Config{}, "doc.md", "other.md")

	if !filepath.IsAbs(idx.root) {
		t.Fatalf("expected an absolute root, got %q", idx.root)
	}
	links, ok := idx.Links("doc.md")
	if !ok || !reflect.DeepEqual(links, []string{"other"}) {
		t.Fatalf("expected doc.md to be indexed with one link, got %v (ok=%v)", links, ok)
	}
	dest, ok := idx.FirstLinkpathDest("other", idx.Canonical("doc.md"))
	if !ok || dest != idx.Canonical("other.md") {
		t.Fatalf("expected other.md to resolve, got %q (ok=%v)", dest, ok)
	}
}

func TestIndexDocumentsTitles(t *testing.T) {
	dir := t.TempDir()
	titled := writeNote(t, dir, "a.md", "---\ntitle: Alpha\n---\n")
	plain := writeNote(t, dir, "b.md", "body")

	docs := buildIndex(t, dir, Config{}, titled, plain).Documents()
	if len(docs) != 2 {
		t.Fatalf("expected two documents, got %d", len(docs))
	}
	if docs[0].Title != "Alpha" || docs[1].Title != "b" {
		t.Fatalf("unexpected titles: %q, %q", docs[0].Title, docs[1].Title)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	tests := map[string]struct {
		in       string
		wantFM   string
		wantBody string
		hasFM    bool
	}{
		"standard":     {in: "---\na: 1\n---\nbody", wantFM: "a: 1", wantBody: "body", hasFM: true},
		"crlf":         {in: "---\r\na: 1\r\n---\r\nbody", wantFM: "a: 1", wantBody: "body", hasFM: true},
		"empty block":  {in: "---\n---\nbody", wantFM: "", wantBody: "body", hasFM: true},
		"eof":          {in: "---\na: 1\n---", wantFM: "a: 1", wantBody: "", hasFM: true},
		"none":         {in: "body\n---\na: 1\n---\n", wantBody: "body\n---\na: 1\n---\n"},
		"unterminated": {in: "---\na: 1\nbody", wantBody: "---\na: 1\nbody"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fm, body := SplitFrontMatter([]byte(tt.in))
			if (fm != nil) != tt.hasFM {
				t.Fatalf("expected front matter presence %v, got %q", tt.hasFM, fm)
			}
			if string(fm) != tt.wantFM {
				t.Fatalf("expected front matter %q, got %q", tt.wantFM, fm)
			}
			if string(body) != tt.wantBody {
				t.Fatalf("expected body %q, got %q", tt.wantBody, body)
			}
		})
	}
}
