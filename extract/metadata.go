package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"aeoaudit/model"
)

var bylineClassRe = regexp.MustCompile(`(?i)author|byline`)
var byPrefixRe = regexp.MustCompile(`(?i)^by\s+`)

// Metadata extracts title, canonical, description, OpenGraph/Twitter cards,
// and merges author/date signals by priority (§4.C "Metadata") via goquery
// selector reads rather than manual substring scanning.
func Metadata(doc *goquery.Document, jsonld []map[string]any) (title string, meta model.Meta, author model.Author, dates model.Dates) {
	title = strings.TrimSpace(doc.Find("title").First().Text())

	meta.Canonical, _ = doc.Find(`link[rel="canonical"]`).First().Attr("href")
	meta.Description = attrOrEmpty(doc, `meta[name="description"]`, "content")
	meta.Viewport = attrOrEmpty(doc, `meta[name="viewport"]`, "content")
	meta.AEOContentType = attrOrEmpty(doc, `meta[name="aeo:content-type"]`, "content")

	meta.OpenGraph = collectMetaPrefixed(doc, "og:")
	meta.Twitter = collectMetaPrefixed(doc, "twitter:")

	author = mergeAuthor(doc, jsonld)
	dates = mergeDates(doc, jsonld)

	return title, meta, author, dates
}

func attrOrEmpty(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}

func collectMetaPrefixed(doc *goquery.Document, prefix string) map[string]string {
	out := map[string]string{}
	doc.Find("meta[property], meta[name]").Each(func(_ int, s *goquery.Selection) {
		key, ok := s.Attr("property")
		if !ok {
			key, ok = s.Attr("name")
		}
		if !ok || !strings.HasPrefix(key, prefix) {
			return
		}
		content, _ := s.Attr("content")
		out[strings.TrimPrefix(key, prefix)] = content
	})
	return out
}

// mergeAuthor implements the priority-merge of §4.C "Metadata": JSON-LD
// Article.author, then <meta name=author>, then rel=author/byline class,
// then "By X" prefix stripping.
func mergeAuthor(doc *goquery.Document, jsonld []map[string]any) model.Author {
	for _, obj := range jsonld {
		name := authorNameFromJSONLD(obj)
		if name != "" {
			return model.Author{Found: true, Name: name, Sources: []model.AuthorSource{model.AuthorSourceJSONLD}}
		}
	}

	if name := attrOrEmpty(doc, `meta[name="author"]`, "content"); name != "" {
		return model.Author{Found: true, Name: name, Sources: []model.AuthorSource{model.AuthorSourceMeta}}
	}

	if sel := doc.Find(`[rel="author"]`).First(); sel.Length() > 0 {
		name := strings.TrimSpace(sel.Text())
		if name != "" {
			return model.Author{Found: true, Name: name, URL: hrefOf(sel), Sources: []model.AuthorSource{model.AuthorSourceByline}}
		}
	}
	var found *goquery.Selection
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if bylineClassRe.MatchString(class) {
			found = s
			return false
		}
		return true
	})
	if found != nil {
		name := strings.TrimSpace(found.Text())
		if name != "" {
			return model.Author{Found: true, Name: name, Sources: []model.AuthorSource{model.AuthorSourceByline}}
		}
	}

	var prefixed string
	doc.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if byPrefixRe.MatchString(text) && len(text) < 120 {
			prefixed = byPrefixRe.ReplaceAllString(text, "")
			return false
		}
		return true
	})
	if prefixed != "" {
		return model.Author{Found: true, Name: strings.TrimSpace(prefixed), Sources: []model.AuthorSource{model.AuthorSourcePrefix}}
	}

	return model.Author{Found: false}
}

func authorNameFromJSONLD(obj map[string]any) string {
	switch t := obj["author"].(type) {
	case string:
		return t
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return name
		}
	case []any:
		for _, a := range t {
			if m, ok := a.(map[string]any); ok {
				if name, ok := m["name"].(string); ok {
					return name
				}
			}
		}
	}
	return ""
}

func hrefOf(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	return href
}

// mergeDates implements the §4.C "Metadata" date priority: JSON-LD
// datePublished/dateModified, then article:published_time/modified_time
// meta, then <time datetime>.
func mergeDates(doc *goquery.Document, jsonld []map[string]any) model.Dates {
	var d model.Dates

	for _, obj := range jsonld {
		if p, ok := obj["datePublished"].(string); ok && d.Published == nil {
			if t, ok := parseFlexibleDate(p); ok {
				d.Published = &t
				d.PublishedSource = model.DateSourceJSONLD
			}
		}
		if m, ok := obj["dateModified"].(string); ok && d.Modified == nil {
			if t, ok := parseFlexibleDate(m); ok {
				d.Modified = &t
				d.ModifiedSource = model.DateSourceJSONLD
			}
		}
	}

	if d.Published == nil {
		if raw := attrOrEmpty(doc, `meta[property="article:published_time"]`, "content"); raw != "" {
			if t, ok := parseFlexibleDate(raw); ok {
				d.Published = &t
				d.PublishedSource = model.DateSourceMetaTag
			}
		}
	}
	if d.Modified == nil {
		if raw := attrOrEmpty(doc, `meta[property="article:modified_time"]`, "content"); raw != "" {
			if t, ok := parseFlexibleDate(raw); ok {
				d.Modified = &t
				d.ModifiedSource = model.DateSourceMetaTag
			}
		}
	}

	if d.Published == nil {
		if raw, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
			if t, ok := parseFlexibleDate(raw); ok {
				d.Published = &t
				d.PublishedSource = model.DateSourceTimeElement
			}
		}
	}

	if d.Published == nil {
		d.PublishedSource = model.DateSourceUnparseable
	}
	if d.Modified == nil {
		d.ModifiedSource = model.DateSourceUnparseable
	}

	return d
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	time.RFC1123,
	time.RFC1123Z,
}

func parseFlexibleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
