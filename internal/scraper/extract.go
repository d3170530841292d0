package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractFirst evaluates rules in order against doc and returns the first
// non-empty result. Matches are resolved in document order, so the output is
// fully deterministic for a given document and rule list.
func extractFirst(doc *goquery.Document, rules []Rule) (string, bool) {
	for _, rule := range rules {
		sel := doc.Find(rule.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		var value string
		if rule.Attr == "" {
			value = strings.TrimSpace(sel.Text())
		} else {
			value = strings.TrimSpace(sel.AttrOr(rule.Attr, ""))
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// firstSelection returns the first element matching any of the selectors,
// tried in order, or nil when none matches.
func firstSelection(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}
