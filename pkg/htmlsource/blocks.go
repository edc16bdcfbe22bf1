// Package htmlsource extracts the ordered raw block sequence the graph
// builder consumes from EUR-Lex HTML. It flattens the document into
// (markup hint, text) blocks in document order and leaves all structural
// interpretation to the builder.
package htmlsource

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/lexgraph/pkg/graph"
)

// blockTags are the elements emitted as raw blocks, in document order.
var blockTags = map[string]bool{
	"p": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true,
}

// skipTags are page chrome that never contains act text.
var skipTags = map[string]bool{
	"script": true, "style": true, "nav": true, "header": true, "footer": true,
}

// Extract parses EUR-Lex HTML and returns the document title (from the
// eli-main-title division or the <title> element, when present) and the
// flat block sequence.
func Extract(r io.Reader) (string, []graph.Block, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", nil, fmt.Errorf("parsing html: %w", err)
	}

	var title string
	var blocks []graph.Block

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[n.Data] {
				return
			}
			if n.Data == "div" && hasClass(n, "eli-main-title") && title == "" {
				title = textContent(n)
			}
			if n.Data == "title" && title == "" {
				title = textContent(n)
			}
			if blockTags[n.Data] {
				if text := textContent(n); text != "" {
					blocks = append(blocks, graph.Block{Hint: n.Data, Text: text})
				}
				// The block's text is already collected; descending
				// would re-emit nested paragraphs (tables contain <p>).
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, blocks, nil
}

// textContent joins all text under a node with single spaces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
