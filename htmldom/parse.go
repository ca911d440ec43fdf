// Package htmldom implements the Parser (§4.B): it accepts raw HTML,
// strips noise elements, and isolates the main-content container that the
// extractors then read. Built on goquery-based selection rather than a
// hand-rolled golang.org/x/net/html walker, since goquery is the
// ecosystem's idiomatic DOM-query library for this kind of traversal.
package htmldom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// noiseSelectors names elements removed before main-content isolation (§4.B step 1).
var noiseSelectors = []string{"script", "style", "nav", "footer", "header", "aside"}

var noiseClassTokens = []string{"ad", "advertisement", "sponsored", "cookie-banner", "popup"}

// Document wraps a cleaned goquery document and its isolated main container.
type Document struct {
	Doc  *goquery.Document
	Main *goquery.Selection

	// SemanticTagCount is the number of distinct semantic tags (article,
	// section, header, footer) present before noise-stripping removes
	// header/footer; the Technical scorer needs this even though
	// header/footer never survive into Main.
	SemanticTagCount int
}

// Parse runs the parser pipeline: remove noise, then pick the main
// container. It leaves text whitespace as it is in the markup;
// NormalizeWhitespace is a separate helper that Parse does not call.
func Parse(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Malformed markup is tolerated, never fatal (§7): goquery's
		// underlying x/net/html tokenizer already recovers as far as it
		// can, so a non-nil error here means no document at all.
		return nil, eris.Wrap(err, "htmldom: parse")
	}

	semanticCount := countDistinctSemanticTags(doc.Selection)

	stripNoise(doc.Selection)

	main := pickMainContainer(doc)

	return &Document{Doc: doc, Main: main, SemanticTagCount: semanticCount}, nil
}

func countDistinctSemanticTags(root *goquery.Selection) int {
	count := 0
	for _, tag := range []string{"article", "section", "header", "footer"} {
		if root.Find(tag).Length() > 0 {
			count++
		}
	}
	return count
}

func stripNoise(root *goquery.Selection) {
	for _, sel := range noiseSelectors {
		root.Find(sel).Remove()
	}

	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		tokens := classTokens(class + " " + id)
		if hasNoiseToken(tokens) {
			s.Remove()
		}
	})
}

// classTokens splits a class/id attribute value into lowercase tokens on
// whitespace and hyphen boundaries, so e.g. "article-heading" yields
// ["article", "heading"] rather than a single opaque string a naive
// substring check could false-positive against (§4.B step 1: noise
// removal must not catch ordinary content whose class happens to contain
// a noise word as a substring, e.g. "header" or "thread").
func classTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
}

// hasNoiseToken reports whether tokens contains one of noiseClassTokens as
// an exact token (or, for hyphenated entries like "cookie-banner", as a
// consecutive token subsequence) rather than a raw substring match.
func hasNoiseToken(tokens []string) bool {
	for _, entry := range noiseClassTokens {
		if containsSubsequence(tokens, classTokens(entry)) {
			return true
		}
	}
	return false
}

func containsSubsequence(tokens, sub []string) bool {
	if len(sub) == 0 || len(sub) > len(tokens) {
		return false
	}
	for i := 0; i+len(sub) <= len(tokens); i++ {
		match := true
		for j, t := range sub {
			if tokens[i+j] != t {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// pickMainContainer implements the §4.B priority chain: <main>, then
// <article>, then the largest content <div> by visible text, then <body>.
func pickMainContainer(doc *goquery.Document) *goquery.Selection {
	if main := doc.Find("main").First(); main.Length() > 0 {
		return main
	}
	if article := doc.Find("article").First(); article.Length() > 0 {
		return article
	}
	if div := largestDivByText(doc); div != nil {
		return div
	}
	return doc.Find("body").First()
}

func largestDivByText(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestLen := 0
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > bestLen {
			bestLen = len(text)
			sel := s
			best = sel
		}
	})
	if best == nil || bestLen == 0 {
		return nil
	}
	return best
}

// NormalizeWhitespace collapses runs of whitespace while preserving single
// spaces between words, without touching element boundaries (§4.B step 3).
func NormalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
