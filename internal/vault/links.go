package vault

import (
	"regexp"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var wikiLinkPattern = regexp.MustCompile(`\[\[(.+?)\]\]`)

type span struct {
	start, stop int
}

// ExtractLinks returns the inner text of every wiki link in body, in source
// order and with duplicates kept. Links inside code blocks and code spans are
// not links.
func ExtractLinks(body []byte) []string {
	matches := wikiLinkPattern.FindAllSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil
	}

	code := codeSpans(body)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		if insideAny(code, m[0]) {
			continue
		}
		links = append(links, string(body[m[2]:m[3]]))
	}
	return links
}

// codeSpans returns the byte ranges of body that goldmark treats as code.
func codeSpans(body []byte) []span {
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var spans []span
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				spans = append(spans, span{start: seg.Start, stop: seg.Stop})
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			first, last := -1, -1
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				t, ok := c.(*ast.Text)
				if !ok {
					continue
				}
				if first < 0 {
					first = t.Segment.Start
				}
				last = t.Segment.Stop
			}
			if first >= 0 {
				spans = append(spans, span{start: first, stop: last})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	return spans
}

func insideAny(spans []span, offset int) bool {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].stop > offset
	})
	return i < len(spans) && spans[i].start <= offset
}
