package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aeoaudit/model"
)

func TestSchemaQuality_CreditsArrayValuedTypeForCoreAndRichTypes(t *testing.T) {
	pm := &model.PageModel{
		JSONLD: []map[string]any{
			{"@type": []any{"Article", "NewsArticle"}},
			{"@type": []any{"FAQPage"}},
		},
	}

	assert.Equal(t, 5.0, schemaQuality(pm))
}

func TestStructuredAdvanced_CreditsArrayValuedBreadcrumbList(t *testing.T) {
	pm := &model.PageModel{
		JSONLD: []map[string]any{
			{"@type": []any{"BreadcrumbList"}},
		},
	}

	assert.Equal(t, 1.0, structuredAdvanced(pm))
}
