package geoscore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/model"
)

func TestBrandNameFromDomain(t *testing.T) {
	assert.Equal(t, "acme", BrandNameFromDomain("acme.com"))
	assert.Equal(t, "acme", BrandNameFromDomain("www.acme.com"))
	assert.Equal(t, "acme", BrandNameFromDomain("acme.co.uk"))
	assert.Equal(t, "acme", BrandNameFromDomain("acme.io"))
}

func page(url, title string, h1 string, published bool, https bool) PageInput {
	pm := &model.PageModel{
		URL:     url,
		Title:   title,
		IsHTTPS: https,
		Headings: []model.Heading{
			{Level: 1, Text: h1},
		},
		Paragraphs: []model.Paragraph{{Text: "About " + title}},
		Keywords:   []string{"widgets", "pricing", "support", "install", "guide"},
	}
	if published {
		now := time.Now()
		pm.Dates.Published = &now
		pm.Author = model.Author{Found: true, Name: "Jane Doe"}
	}
	return PageInput{
		Model: pm,
		Audit: model.PageAudit{URL: url, OverallScore: 70},
	}
}

func TestCompute_AllPagesHTTPSAndAuthored_ScoresTrustComponentFully(t *testing.T) {
	pages := []PageInput{
		page("https://acme.com/", "Acme", "Acme", true, true),
		page("https://acme.com/about", "About Acme", "About Acme", true, true),
	}

	result := Compute("acme.com", "acme", pages)
	require.NotNil(t, result)

	trust := result.Components[model.GEOTrust]
	assert.Equal(t, 10.0, trust.Raw)
}

func TestCompute_NoPages_ReturnsZeroScoreWithoutPanicking(t *testing.T) {
	result := Compute("acme.com", "acme", nil)
	require.NotNil(t, result)
	assert.Equal(t, 0.0, result.Overall)
	assert.Equal(t, "F", result.Grade)
}

func TestCompute_LowScoringComponentsProduceRecommendations(t *testing.T) {
	pages := []PageInput{
		page("https://acme.com/", "Acme", "Acme", false, false),
	}

	result := Compute("acme.com", "acme", pages)
	assert.NotEmpty(t, result.Recommendations)
}

func TestClusterPagesByTopic_SharedKeywordsGroupTogether(t *testing.T) {
	pages := []PageInput{
		page("https://acme.com/a", "A", "A", true, true),
		page("https://acme.com/b", "B", "B", true, true),
	}
	clusters := clusterPagesByTopic(pages)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 2)
}

func TestBrandNamingConsistency_ExactCasingMatchWinsOut(t *testing.T) {
	pages := []PageInput{
		page("https://acme.com/a", "Acme Widgets", "Acme", true, true),
		page("https://acme.com/b", "Acme Support", "Acme", true, true),
		page("https://acme.com/c", "ACME Pricing", "ACME", true, true),
	}
	ratio := brandNamingConsistency(pages, "acme")
	assert.InDelta(t, 2.0/3.0, ratio, 0.001)
}
