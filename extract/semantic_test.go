package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/model"
)

func mainSelection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("main")
}

func TestSemantic_CalloutClassProducesCalloutPattern(t *testing.T) {
	main := mainSelection(t, `<html><body><main><div class="callout">Heads up: read this.</div></main></body></html>`)

	_, patterns, _ := Semantic(main)

	require.Len(t, patterns, 1)
	assert.Equal(t, model.PatternCallout, patterns[0].Kind)
}

func TestSemantic_DefinitionClassProducesDefinitionPattern(t *testing.T) {
	main := mainSelection(t, `<html><body><main><div class="definition-box">A term means this.</div></main></body></html>`)

	_, patterns, _ := Semantic(main)

	require.Len(t, patterns, 1)
	assert.Equal(t, model.PatternDefinition, patterns[0].Kind)
}
