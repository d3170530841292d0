package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockTags are elements that contribute a paragraph boundary when the
// description is flattened to plain text.
var blockTags = map[string]bool{
	"p":   true,
	"div": true,
	"br":  true,
	"li":  true,
}

// normalizeDescription flattens a description element to plain text.
// Expand/read-more controls are removed first so their labels do not leak
// into the output, block-level children keep a line break between them, and
// known boilerplate phrases are stripped wherever they occur. The result is
// stable under repeated normalization.
func normalizeDescription(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}

	sel.Find(strings.Join(junkSelectors, ", ")).Remove()

	text := blockText(sel)
	for _, phrase := range boilerplatePhrases {
		text = strings.ReplaceAll(text, phrase, "")
	}
	return tidyLines(text)
}

// blockText serializes the selection's text content, inserting line breaks
// at block element boundaries.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, &b)
		}
	}
	return tidyLines(b.String())
}

func writeNodeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if blockTags[n.Data] {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeNodeText(c, b)
		}
		if blockTags[n.Data] {
			b.WriteByte('\n')
		}
	}
}

// tidyLines trims every line and drops empty ones.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
