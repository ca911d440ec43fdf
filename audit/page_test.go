package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/model"
	"aeoaudit/score"
)

type stubFetcher struct {
	result *model.FetchResult
	err    error
}

func (s stubFetcher) Fetch(context.Context, string) (*model.FetchResult, error) {
	return s.result, s.err
}

func newTestCalculator() *score.Calculator {
	return score.NewCalculator(
		score.Answerability(),
		score.StructuredData(),
		score.Authority(nil),
		score.ContentQuality(),
		score.Citationability(),
		score.Technical(),
	)
}

func TestPage_ReturnsModelAndScoredAudit(t *testing.T) {
	html := `<html><head><title>Widgets Guide</title></head><body>
		<h1>Widgets Guide</h1>
		<p>Widgets are small mechanical parts used in many products.</p>
	</body></html>`

	fetcher := stubFetcher{result: &model.FetchResult{
		URL:       "https://example.com/guide",
		HTML:      html,
		FetchedAt: time.Now(),
	}}

	p := New(fetcher, newTestCalculator(), nil)
	result, err := p.Page(context.Background(), "https://example.com/guide")

	require.NoError(t, err)
	require.NotNil(t, result.Model)
	assert.Equal(t, "Widgets Guide", result.Model.Title)
	assert.GreaterOrEqual(t, result.Audit.OverallScore, 0.0)
	assert.LessOrEqual(t, result.Audit.OverallScore, 100.0)
	assert.NotEmpty(t, result.Audit.Grade)
}

func TestPage_FetchErrorIsWrapped(t *testing.T) {
	fetcher := stubFetcher{err: assert.AnError}

	p := New(fetcher, newTestCalculator(), nil)
	_, err := p.Page(context.Background(), "https://example.com/broken")

	require.Error(t, err)
}
