// Package extract implements the six deterministic, side-effect-free
// extractors (§4.C) that turn a cleaned DOM into a PageModel. They do not
// mutate shared state, so Run fans the independent ones out concurrently
// with errgroup.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aeoaudit/htmldom"
	"aeoaudit/model"
)

// Run builds a PageModel from a FetchResult by parsing the HTML, fanning
// Structural, Semantic, Schema and Media out concurrently, then running
// Metadata (which needs Schema's JSON-LD) after they finish. Performance
// is copied straight from the FetchResult.
func Run(fr *model.FetchResult, log *zap.Logger) (*model.PageModel, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pm := &model.PageModel{
		URL:         fr.URL,
		Performance: fr.Performance,
	}
	pm.IsHTTPS = strings.HasPrefix(strings.ToLower(fr.URL), "https://")

	if fr.HTML == "" {
		// Failure semantics (§4.A, §7): empty html yields a near-empty
		// PageModel, never a crash.
		return pm, nil
	}

	doc, err := htmldom.Parse(fr.HTML)
	if err != nil {
		log.Warn("parse failure, returning near-empty page model", zap.String("url", fr.URL), zap.Error(err))
		return pm, nil
	}

	var (
		headings      []model.Heading
		paragraphs    []model.Paragraph
		lists         []model.List
		tables        []model.Table
		codeBlocks    int
		images        []model.Image
		questions     []model.Question
		patterns      []model.AnswerPattern
		keywords      []string
		jsonld        []map[string]any
		faq           model.FAQSchema
		microdata     bool
		rdfa          bool
		title         string
		meta          model.Meta
		author        model.Author
		dates         model.Dates
	)

	// The parser strips <script> elements as noise, so Schema reads the
	// ld+json blocks from a separate, unstripped parse of the same HTML.
	schemaDoc := doc.Doc
	if raw, rawErr := goquery.NewDocumentFromReader(strings.NewReader(fr.HTML)); rawErr == nil {
		schemaDoc = raw
	}

	g := &errgroup.Group{}

	g.Go(func() error {
		headings, paragraphs, lists, tables, codeBlocks = Structural(doc.Main)
		return nil
	})
	g.Go(func() error {
		questions, patterns, keywords = Semantic(doc.Main)
		return nil
	})
	g.Go(func() error {
		jsonld, faq, microdata, rdfa = Schema(schemaDoc, log)
		return nil
	})
	g.Go(func() error {
		images = Media(doc.Main)
		return nil
	})

	// Metadata depends on jsonld for author/date merge priority, so it runs
	// after the fan-out barrier rather than inside it.
	_ = g.Wait()

	title, meta, author, dates = Metadata(doc.Doc, jsonld)

	internal, external := partitionLinks(doc.Main, fr.URL)

	pm.Title = title
	pm.Meta = meta
	pm.Headings = headings
	pm.Paragraphs = paragraphs
	pm.Lists = lists
	pm.Tables = tables
	pm.CodeBlockCount = codeBlocks
	pm.Images = images
	pm.Questions = questions
	pm.AnswerPatterns = patterns
	pm.Keywords = keywords
	pm.JSONLD = jsonld
	pm.FAQ = faq
	pm.MicrodataPresent = microdata
	pm.RDFaPresent = rdfa
	pm.Author = author
	pm.Dates = dates
	pm.ExternalLinks = external
	pm.InternalLinksCount = internal
	pm.WordCount = sumWords(paragraphs)
	pm.SemanticTagCount = doc.SemanticTagCount
	pm.Performance = Performance(fr.Performance)

	return pm, nil
}

func sumWords(paragraphs []model.Paragraph) int {
	total := 0
	for _, p := range paragraphs {
		total += p.WordCount
	}
	return total
}

// partitionLinks counts internal links and collects external link URLs from
// the main content container, relative to the audited page's host.
func partitionLinks(main *goquery.Selection, pageURL string) (internalCount int, external []string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return 0, nil
	}

	main.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if sameHost(base, resolved) {
			internalCount++
		} else if resolved.Scheme == "http" || resolved.Scheme == "https" {
			external = append(external, resolved.String())
		}
	})
	return internalCount, external
}

func sameHost(a, b *url.URL) bool {
	return strings.TrimPrefix(strings.ToLower(a.Hostname()), "www.") == strings.TrimPrefix(strings.ToLower(b.Hostname()), "www.")
}
