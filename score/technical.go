package score

import (
	"strings"

	"aeoaudit/model"
)

type technicalScorer struct{}

func Technical() Scorer { return technicalScorer{} }

func (technicalScorer) Name() model.CategoryName { return model.CategoryTechnical }

// Score implements §4.E "Technical (10)": LCP (3), mobile (2), semantic
// HTML (2), internal linking (2), meta description length (1).
func (technicalScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"lcp":                lcpScore(pm),
		"mobile":              mobileScore(pm),
		"semantic_html":       semanticHTMLScore(pm),
		"internal_linking":    internalLinkingScore(pm),
		"meta_description":    metaDescriptionScore(pm),
	}
	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryTechnical], SubScores: sub}
}

func lcpScore(pm *model.PageModel) float64 {
	lcpMs := pm.Performance.LCPMillis
	if lcpMs == 0 {
		return 0
	}
	lcpSeconds := float64(lcpMs) / 1000
	switch {
	case lcpSeconds <= 2.5:
		return 3
	case lcpSeconds <= 4:
		return 2
	case lcpSeconds <= 6:
		return 1
	default:
		return 0
	}
}

func mobileScore(pm *model.PageModel) float64 {
	score := 0.0
	if pm.Meta.Viewport != "" {
		score += 1
	}
	// Responsive CSS signal: a viewport meta with width=device-width is the
	// closest observable proxy available to the pipeline without fetching
	// stylesheet bytes.
	if strings.Contains(pm.Meta.Viewport, "device-width") {
		score += 1
	}
	return clamp(score, 0, 2)
}

func semanticHTMLScore(pm *model.PageModel) float64 {
	score := 0.0
	if pm.SemanticTagCount >= 2 {
		score += 1
	}
	if validHeadingHierarchy(pm.Headings) {
		score += 1
	}
	return score
}

// validHeadingHierarchy requires exactly one h1 and no downward jump of
// more than one level.
func validHeadingHierarchy(headings []model.Heading) bool {
	h1Count := 0
	prevLevel := 0
	for _, h := range headings {
		if h.Level == 1 {
			h1Count++
		}
		if prevLevel > 0 && h.Level > prevLevel+1 {
			return false
		}
		prevLevel = h.Level
	}
	return h1Count == 1
}

func internalLinkingScore(pm *model.PageModel) float64 {
	return clamp(float64(pm.InternalLinksCount)*0.2, 0, 2)
}

func metaDescriptionScore(pm *model.PageModel) float64 {
	length := len(pm.Meta.Description)
	if length >= 50 && length <= 160 {
		return 1
	}
	return 0
}
