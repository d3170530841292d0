package scraper

import (
	"strings"
	"testing"
)

func descriptionSelection(t *testing.T, html string) string {
	t.Helper()
	doc := parseDoc(t, html)
	return normalizeDescription(firstSelection(doc, descriptionSelectors))
}

func TestNormalizeDescriptionAbsent(t *testing.T) {
	t.Parallel()

	if got := normalizeDescription(nil); got != "" {
		t.Fatalf("normalizeDescription(nil) = %q, want empty", got)
	}
	if got := descriptionSelection(t, `<p>no description container</p>`); got != "" {
		t.Fatalf("expected empty description, got %q", got)
	}
}

func TestNormalizeDescriptionRemovesJunkElements(t *testing.T) {
	t.Parallel()

	html := `<div class="collapse-content">
		<p>Pierwszy akapit opisu.</p>
		<span class="js-book-read-more">... więcej</span>
		<button class="expand-text-button">Rozwiń opis</button>
	</div>`
	got := descriptionSelection(t, html)
	if got != "Pierwszy akapit opisu." {
		t.Fatalf("normalizeDescription() = %q", got)
	}
	if strings.Contains(got, "więcej") || strings.Contains(got, "Rozwiń") {
		t.Fatalf("junk text leaked into description: %q", got)
	}
}

func TestNormalizeDescriptionStripsBoilerplatePhrases(t *testing.T) {
	t.Parallel()

	// Phrases can appear as bare text outside any junk element.
	html := `<div class="collapse-content">Opis książki ... więcej</div>`
	got := descriptionSelection(t, html)
	if got != "Opis książki" {
		t.Fatalf("normalizeDescription() = %q, want %q", got, "Opis książki")
	}
}

func TestNormalizeDescriptionPreservesParagraphs(t *testing.T) {
	t.Parallel()

	html := `<div class="collapse-content"><p>Akapit pierwszy.</p><p>Akapit drugi.</p>Tekst luzem.</div>`
	got := descriptionSelection(t, html)
	want := "Akapit pierwszy.\nAkapit drugi.\nTekst luzem."
	if got != want {
		t.Fatalf("normalizeDescription() = %q, want %q", got, want)
	}
}

func TestNormalizeDescriptionHandlesLineBreaks(t *testing.T) {
	t.Parallel()

	html := `<div class="book-description">Linia pierwsza<br>Linia druga</div>`
	got := descriptionSelection(t, html)
	want := "Linia pierwsza\nLinia druga"
	if got != want {
		t.Fatalf("normalizeDescription() = %q, want %q", got, want)
	}
}

func TestNormalizeDescriptionIdempotent(t *testing.T) {
	t.Parallel()

	html := `<div class="collapse-content">
		<p>Akapit pierwszy.</p>
		<p>Akapit drugi ... więcej</p>
		<span class="js-book-read-more">... więcej</span>
	</div>`
	first := descriptionSelection(t, html)

	// Feed the normalized output back through as a plain container.
	again := descriptionSelection(t, `<div class="collapse-content">`+first+`</div>`)
	if first != again {
		t.Fatalf("normalization not idempotent: %q vs %q", first, again)
	}
}
