package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aeoaudit/model"
)

func TestClassify_ExplicitMetaWins(t *testing.T) {
	pm := &model.PageModel{
		URL:  "https://example.com/product/widget",
		Meta: model.Meta{AEOContentType: "experiential"},
		JSONLD: []map[string]any{{"@type": "Product"}},
	}
	result := Classify(pm)
	assert.Equal(t, model.ContentTypeExperiential, result.Type)
	assert.Equal(t, model.ConfidenceHigh, result.Confidence)
}

func TestClassify_SchemaBeatsURLPath(t *testing.T) {
	pm := &model.PageModel{
		URL:    "https://example.com/blog/some-post",
		JSONLD: []map[string]any{{"@type": "Product"}},
	}
	result := Classify(pm)
	assert.Equal(t, model.ContentTypeTransactional, result.Type)
}

func TestClassify_URLPathBeatsHeuristics(t *testing.T) {
	pm := &model.PageModel{URL: "https://example.com/category/shoes"}
	result := Classify(pm)
	assert.Equal(t, model.ContentTypeNavigational, result.Type)
	assert.Equal(t, model.ConfidenceMedium, result.Confidence)
}

func TestClassify_DefaultsToInformationalLow(t *testing.T) {
	pm := &model.PageModel{URL: "https://example.com/random-page"}
	result := Classify(pm)
	assert.Equal(t, model.ContentTypeInformational, result.Type)
	assert.Equal(t, model.ConfidenceLow, result.Confidence)
}

func TestContentHeuristics_TieBreaksDeterministically(t *testing.T) {
	pm := &model.PageModel{
		URL: "https://example.com/random-page",
		Paragraphs: []model.Paragraph{
			{Text: "this guide covers a journey across the region"},
		},
	}

	var first model.ContentType
	for i := 0; i < 50; i++ {
		ct, _, _ := contentHeuristics(pm)
		if i == 0 {
			first = ct
		}
		assert.Equal(t, first, ct, "tie-break must be stable across repeated calls")
	}
	assert.Equal(t, model.ContentTypeInformational, first)
}
