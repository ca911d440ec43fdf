// Package score implements the Content-Aware Scoring Engine (§4.E/F): seven
// weighted category scorers unified under a single capability, a
// content-type weight matrix, and the Score Calculator.
package score

import "aeoaudit/model"

// Scorer is the unified capability every category scorer implements (§9
// design note: "Unify them under a single capability").
type Scorer interface {
	Name() model.CategoryName
	Score(pm *model.PageModel, cc model.ContentClassification) model.CategoryScore
}

// baseMax is the max-points-by-category before content-type weighting (§4.E).
var baseMax = map[model.CategoryName]float64{
	model.CategoryAnswerability:   30,
	model.CategoryStructuredData:  15,
	model.CategoryAuthority:       18,
	model.CategoryContentQuality:  15,
	model.CategoryCitationability: 12,
	model.CategoryTechnical:       10,
	model.CategoryAICitation:      5,
}

// weightMatrix is the content-type reweighting table (§4.E). AICitation is
// not reweighted by content type; it is additive/optional.
var weightMatrix = map[model.CategoryName]map[model.ContentType]float64{
	model.CategoryAnswerability: {
		model.ContentTypeInformational: 1.3,
		model.ContentTypeExperiential:  0.5,
		model.ContentTypeTransactional: 0.8,
		model.ContentTypeNavigational:  0.6,
	},
	model.CategoryStructuredData: {
		model.ContentTypeInformational: 1.0,
		model.ContentTypeExperiential:  1.3,
		model.ContentTypeTransactional: 1.4,
		model.ContentTypeNavigational:  1.2,
	},
	model.CategoryAuthority: {
		model.ContentTypeInformational: 1.2,
		model.ContentTypeExperiential:  0.9,
		model.ContentTypeTransactional: 1.1,
		model.ContentTypeNavigational:  0.8,
	},
	model.CategoryContentQuality: {
		model.ContentTypeInformational: 1.2,
		model.ContentTypeExperiential:  1.1,
		model.ContentTypeTransactional: 0.9,
		model.ContentTypeNavigational:  0.7,
	},
	model.CategoryCitationability: {
		model.ContentTypeInformational: 1.2,
		model.ContentTypeExperiential:  0.6,
		model.ContentTypeTransactional: 0.7,
		model.ContentTypeNavigational:  0.5,
	},
	model.CategoryTechnical: {
		model.ContentTypeInformational: 1.0,
		model.ContentTypeExperiential:  1.0,
		model.ContentTypeTransactional: 1.2,
		model.ContentTypeNavigational:  1.3,
	},
}

// LoadContentTypeWeights overrides the default weight matrix from
// configuration (§6 content_type.weights), letting operators retune
// category emphasis without a code change. Intended to be called once at
// process start, before any scoring begins (§5: "configuration ... is
// read-only after process init").
func LoadContentTypeWeights(weights map[string]map[string]float64) {
	for category, row := range weights {
		name := model.CategoryName(category)
		if _, ok := weightMatrix[name]; !ok {
			continue
		}
		for ct, w := range row {
			weightMatrix[name][model.ContentType(ct)] = w
		}
	}
}

func weightFor(category model.CategoryName, ct model.ContentType) float64 {
	row, ok := weightMatrix[category]
	if !ok {
		return 1.0
	}
	w, ok := row[ct]
	if !ok {
		return 1.0
	}
	return w
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sumSubScores(sub map[string]float64) float64 {
	total := 0.0
	for _, v := range sub {
		total += v
	}
	return total
}
