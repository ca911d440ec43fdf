package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"aeoaudit/model"
)

func TestAuthority_GovDomainWithFreshDateAndJSONLDAuthor_ScoresNearMax(t *testing.T) {
	published := time.Now().Add(-30 * 24 * time.Hour)
	pm := &model.PageModel{
		URL:     "https://agency.gov/report",
		IsHTTPS: true,
		Author: model.Author{
			Found:   true,
			Sources: []model.AuthorSource{model.AuthorSourceJSONLD},
		},
		Dates: model.Dates{Published: &published},
		Headings: []model.Heading{
			{Level: 2, Text: "References"},
		},
		ExternalLinks: []string{"https://example.com/one", "https://example.com/two"},
		JSONLD: []map[string]any{
			{"@type": "Organization", "name": "Example Agency"},
		},
	}

	cs := Authority(nil).Score(pm, model.ContentClassification{})

	assert.Equal(t, 4.0, cs.SubScores["domain_trust"])
	assert.Equal(t, 4.0, cs.SubScores["author"])
	assert.Equal(t, 3.0, cs.SubScores["dates"])
	assert.Equal(t, 3.0, cs.SubScores["organization"])
	assert.Greater(t, cs.Raw, 15.0)
}

func TestAuthority_HTTPPageWithNoSignals_ScoresZero(t *testing.T) {
	pm := &model.PageModel{URL: "http://unknown-blog.example", IsHTTPS: false}

	cs := Authority(nil).Score(pm, model.ContentClassification{})

	assert.Equal(t, 0.0, cs.Raw)
}

func TestAuthority_ConfiguredAuthoritativeHost_EarnsFullDomainTrust(t *testing.T) {
	pm := &model.PageModel{URL: "https://trusted-source.example/article", IsHTTPS: true}

	cs := Authority([]string{"trusted-source.example"}).Score(pm, model.ContentClassification{})

	assert.Equal(t, 4.0, cs.SubScores["domain_trust"])
}

func TestCitations_CountsInlineMarkersInParagraphText(t *testing.T) {
	pm := &model.PageModel{
		Paragraphs: []model.Paragraph{
			{Text: "This claim is well established [1] and corroborated elsewhere [2]."},
			{Text: "A further point [12] rounds things out."},
		},
	}

	assert.Equal(t, 3, inlineCitationMarkerCount(pm))
	assert.Equal(t, 3.0, citations(pm))
}

func TestCitations_NoInlineMarkersOrExternalLinksOrReferences_ScoresZero(t *testing.T) {
	pm := &model.PageModel{
		Paragraphs: []model.Paragraph{{Text: "Nothing notable here."}},
	}

	assert.Equal(t, 0.0, citations(pm))
}
