package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aeoaudit/model"
)

func TestRun_MinimalPage(t *testing.T) {
	fr := &model.FetchResult{
		URL:       "https://example.com/",
		HTML:      `<html><head><title>Hello</title></head><body><p>Hi.</p></body></html>`,
		FetchedAt: time.Now(),
	}
	pm, err := Run(fr, nil)
	require.NoError(t, err)
	require.Equal(t, "Hello", pm.Title)
	require.True(t, pm.IsHTTPS)
}

func TestRun_EmptyHTMLNeverCrashes(t *testing.T) {
	fr := &model.FetchResult{URL: "https://example.com/", HTML: ""}
	pm, err := Run(fr, nil)
	require.NoError(t, err)
	require.Equal(t, 0, pm.WordCount)
}

func TestRun_HeadingLevelsPreserveOrder(t *testing.T) {
	html := `<html><body><main><h1>Title</h1><p>intro content that is long enough to count</p><h2>Sub</h2><h3>SubSub</h3></main></body></html>`
	fr := &model.FetchResult{URL: "https://example.com/", HTML: html}
	pm, err := Run(fr, nil)
	require.NoError(t, err)
	require.Len(t, pm.Headings, 3)
	require.Equal(t, 1, pm.Headings[0].Level)
	require.Equal(t, 2, pm.Headings[1].Level)
	require.Equal(t, 3, pm.Headings[2].Level)
}

func TestSchema_FlattensGraph(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@graph": [{"@type": "Organization", "name": "Acme"}, {"@type": "Article", "headline": "x", "author": "me", "datePublished": "2024-01-01"}]}
</script>
</head><body><main><p>content content content content content content</p></main></body></html>`
	fr := &model.FetchResult{URL: "https://example.com/", HTML: html}
	pm, err := Run(fr, nil)
	require.NoError(t, err)
	require.Len(t, pm.JSONLD, 2)
}

func TestFAQSchema_ValidPairs(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@type": "FAQPage", "mainEntity": [{"@type": "Question", "name": "What is it?", "acceptedAnswer": {"@type": "Answer", "text": "It is this."}}]}
</script>
</head><body><main><p>content content content content content content</p></main></body></html>`
	fr := &model.FetchResult{URL: "https://example.com/", HTML: html}
	pm, err := Run(fr, nil)
	require.NoError(t, err)
	require.Equal(t, 1, pm.FAQ.ValidCount)
}

func TestTopKeywords_ExcludesStopWords(t *testing.T) {
	kws := TopKeywords("the quick brown fox and the lazy dog and the quick fox", 5)
	for _, kw := range kws {
		require.NotEqual(t, "the", kw)
		require.NotEqual(t, "and", kw)
	}
}
