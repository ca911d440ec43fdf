package score

import (
	"sort"
	"time"

	"aeoaudit/model"
)

// Calculator is the canonical single-page result producer (§4.F): it
// invokes every scorer, applies content-type weights, sums to an overall in
// [0,100], grades, and records the per-category breakdown.
type Calculator struct {
	scorers []Scorer
}

// coreCategories are the six always-weighted categories whose base maxes
// sum to 100 before content-type reweighting; AICitation (optional, 5pts)
// is added on top and the final overall is clamped to [0,100] (§8 invariant 1).
var coreCategories = []model.CategoryName{
	model.CategoryAnswerability,
	model.CategoryStructuredData,
	model.CategoryAuthority,
	model.CategoryContentQuality,
	model.CategoryCitationability,
	model.CategoryTechnical,
}

// NewCalculator builds a Calculator over the full set of scorers; include
// an AICitation scorer built with a zero-provider llmclient.Client to get
// graceful disablement per §6/§9.
func NewCalculator(scorers ...Scorer) *Calculator {
	return &Calculator{scorers: scorers}
}

// Calculate runs the full scoring pipeline for one page.
func (c *Calculator) Calculate(pm *model.PageModel, cc model.ContentClassification, fetchedAt time.Time) model.PageAudit {
	rawScores := map[model.CategoryName]model.CategoryScore{}
	for _, s := range c.scorers {
		rawScores[s.Name()] = s.Score(pm, cc)
	}

	weightedMax := map[model.CategoryName]float64{}
	sumWeightedMax := 0.0
	for _, name := range coreCategories {
		w := weightFor(name, cc.Type)
		wm := baseMax[name] * w
		weightedMax[name] = wm
		sumWeightedMax += wm
	}

	renormFactor := 1.0
	if sumWeightedMax > 0 {
		renormFactor = 100.0 / sumWeightedMax
	}

	overall := 0.0
	breakdown := map[model.CategoryName]model.CategoryScore{}
	for _, name := range coreCategories {
		cs, ok := rawScores[name]
		if !ok {
			continue
		}
		weight := weightFor(name, cc.Type)
		contribution := cs.Raw * weight * renormFactor
		overall += contribution

		scaledMax := weightedMax[name] * renormFactor
		breakdown[name] = model.CategoryScore{
			Raw:       contribution,
			Max:       scaledMax,
			SubScores: scaleSubScores(cs.SubScores, weight*renormFactor),
		}
	}

	if aiScore, ok := rawScores[model.CategoryAICitation]; ok {
		overall += aiScore.Raw
		breakdown[model.CategoryAICitation] = aiScore
	}

	overall = clamp(overall, 0, 100)

	return model.PageAudit{
		URL:                   pm.URL,
		OverallScore:          overall,
		Grade:                 Grade(overall),
		ContentClassification: cc,
		Breakdown:             breakdown,
		FetchedAt:             fetchedAt,
	}
}

func scaleSubScores(sub map[string]float64, factor float64) map[string]float64 {
	out := make(map[string]float64, len(sub))
	for k, v := range sub {
		out[k] = v * factor
	}
	return out
}

// SortCategoriesForDisplay returns category names in a stable, deterministic
// order for rendering a breakdown (answerability first, matching the §2
// component table order).
func SortCategoriesForDisplay(breakdown map[model.CategoryName]model.CategoryScore) []model.CategoryName {
	names := make([]model.CategoryName, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return categoryOrder(names[i]) < categoryOrder(names[j])
	})
	return names
}

func categoryOrder(name model.CategoryName) int {
	order := map[model.CategoryName]int{
		model.CategoryAnswerability:   0,
		model.CategoryStructuredData:  1,
		model.CategoryAuthority:       2,
		model.CategoryContentQuality:  3,
		model.CategoryCitationability: 4,
		model.CategoryTechnical:       5,
		model.CategoryAICitation:      6,
	}
	return order[name]
}
