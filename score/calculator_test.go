package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeoaudit/model"
)

type stubScorer struct {
	name model.CategoryName
	raw  float64
}

func (s stubScorer) Name() model.CategoryName { return s.name }

func (s stubScorer) Score(*model.PageModel, model.ContentClassification) model.CategoryScore {
	return model.CategoryScore{
		Raw:       s.raw,
		Max:       baseMax[s.name],
		SubScores: map[string]float64{"stub": s.raw},
	}
}

func fullMarksScorers() []Scorer {
	return []Scorer{
		stubScorer{model.CategoryAnswerability, baseMax[model.CategoryAnswerability]},
		stubScorer{model.CategoryStructuredData, baseMax[model.CategoryStructuredData]},
		stubScorer{model.CategoryAuthority, baseMax[model.CategoryAuthority]},
		stubScorer{model.CategoryContentQuality, baseMax[model.CategoryContentQuality]},
		stubScorer{model.CategoryCitationability, baseMax[model.CategoryCitationability]},
		stubScorer{model.CategoryTechnical, baseMax[model.CategoryTechnical]},
	}
}

func TestCalculate_AllCategoriesAtMax_ScoresOneHundred(t *testing.T) {
	calc := NewCalculator(fullMarksScorers()...)
	pm := &model.PageModel{URL: "https://example.com/a"}
	cc := model.ContentClassification{Type: model.ContentTypeInformational}

	audit := calc.Calculate(pm, cc, time.Now())

	assert.InDelta(t, 100, audit.OverallScore, 0.01)
	assert.Equal(t, "A+", audit.Grade)
}

func TestCalculate_ZeroScores_ScoresZeroAndGradesF(t *testing.T) {
	calc := NewCalculator(
		stubScorer{model.CategoryAnswerability, 0},
		stubScorer{model.CategoryStructuredData, 0},
		stubScorer{model.CategoryAuthority, 0},
		stubScorer{model.CategoryContentQuality, 0},
		stubScorer{model.CategoryCitationability, 0},
		stubScorer{model.CategoryTechnical, 0},
	)
	pm := &model.PageModel{URL: "https://example.com/a"}
	cc := model.ContentClassification{Type: model.ContentTypeTransactional}

	audit := calc.Calculate(pm, cc, time.Now())

	assert.Equal(t, 0.0, audit.OverallScore)
	assert.Equal(t, "F", audit.Grade)
}

func TestCalculate_AICitationIsAdditiveOnTopOfCoreHundred(t *testing.T) {
	scorers := append(fullMarksScorers(), stubScorer{model.CategoryAICitation, baseMax[model.CategoryAICitation]})
	calc := NewCalculator(scorers...)
	pm := &model.PageModel{URL: "https://example.com/a"}
	cc := model.ContentClassification{Type: model.ContentTypeInformational}

	audit := calc.Calculate(pm, cc, time.Now())

	require.Contains(t, audit.Breakdown, model.CategoryAICitation)
	assert.Equal(t, 100.0, audit.OverallScore, "overall must clamp to 100 even when AI citation pushes past it")
}

func TestCalculate_ReweightsByContentType(t *testing.T) {
	calc := NewCalculator(fullMarksScorers()...)
	pm := &model.PageModel{URL: "https://example.com/a"}

	infoAudit := calc.Calculate(pm, model.ContentClassification{Type: model.ContentTypeInformational}, time.Now())
	navAudit := calc.Calculate(pm, model.ContentClassification{Type: model.ContentTypeNavigational}, time.Now())

	assert.NotEqual(t,
		infoAudit.Breakdown[model.CategoryAnswerability].Raw,
		navAudit.Breakdown[model.CategoryAnswerability].Raw,
		"answerability is weighted higher for informational than navigational content",
	)
}

func TestSortCategoriesForDisplay_OrdersAnswerabilityFirst(t *testing.T) {
	breakdown := map[model.CategoryName]model.CategoryScore{
		model.CategoryTechnical:     {},
		model.CategoryAnswerability: {},
		model.CategoryAuthority:     {},
	}

	names := SortCategoriesForDisplay(breakdown)

	require.Len(t, names, 3)
	assert.Equal(t, model.CategoryAnswerability, names[0])
}
