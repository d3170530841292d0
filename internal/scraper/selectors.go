package scraper

// Rule selects an element and names what to take from it. An empty Attr
// takes the element's trimmed text content instead of an attribute value.
type Rule struct {
	Selector string
	Attr     string
}

// The cascades below encode several historical markup versions of
// lubimyczytac.pl. Rules are tried in order and the first non-empty match
// wins; even rules that look like dead paths stay, since dropping one is a
// functional regression risk if the site rolls its templates back.

// searchLinkRules locate the first book link on a search results page.
var searchLinkRules = []Rule{
	{Selector: "a.authorAllBooks__singleTextTitle", Attr: "href"},
	{Selector: ".book-list-item__title a", Attr: "href"},
	{Selector: `a[href*="/ksiazka/"]`, Attr: "href"},
}

// titleRules extract the book title from a detail page.
var titleRules = []Rule{
	{Selector: "h1.bookHeader__title"},
	{Selector: "h1.book__title"},
}

// authorRules extract the author name from a detail page.
var authorRules = []Rule{
	{Selector: ".bookHeader__author a"},
	{Selector: "a.link-name"},
}

// descriptionSelectors locate the container holding the long description.
var descriptionSelectors = []string{
	".collapse-content",
	".book-description",
}

// junkSelectors match expand/read-more UI controls whose label text must not
// leak into the description.
var junkSelectors = []string{
	".js-book-read-more",
	".expand-text-button",
	".js-expand-desc",
	".more-desc",
}

// boilerplatePhrases are stripped from the description wherever they occur.
var boilerplatePhrases = []string{
	"... więcej",
	"Rozwiń opis",
}
