package score

import (
	"time"

	"aeoaudit/model"
)

type contentQualityScorer struct{}

func ContentQuality() Scorer { return contentQualityScorer{} }

func (contentQualityScorer) Name() model.CategoryName { return model.CategoryContentQuality }

// Score implements the Content Quality category: depth (4), structure (3),
// unique value (3), freshness (3), media diversity (1).
func (contentQualityScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"depth":           depthScore(pm),
		"structure":       structureScore(pm),
		"unique_value":    uniqueValueScore(pm),
		"freshness":       freshnessScore(pm),
		"media_diversity": mediaDiversityScore(pm),
	}
	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryContentQuality], SubScores: sub}
}

func depthScore(pm *model.PageModel) float64 {
	switch {
	case pm.WordCount >= 1500:
		return 4
	case pm.WordCount >= 800:
		return 3
	case pm.WordCount >= 400:
		return 2
	case pm.WordCount > 0:
		return 1
	default:
		return 0
	}
}

func structureScore(pm *model.PageModel) float64 {
	h2 := countHeadingLevels(pm, 2, 2)
	switch {
	case h2 >= 8:
		return 3
	case h2 >= 5:
		return 2
	case h2 >= 2:
		return 1
	default:
		return 0
	}
}

func uniqueValueScore(pm *model.PageModel) float64 {
	score := 0.0
	if len(pm.Tables) >= 1 {
		score++
	}
	if pm.CodeBlockCount >= 1 {
		score++
	}
	informationalImages := 0
	for _, img := range pm.Images {
		if !img.Decorative {
			informationalImages++
		}
	}
	if informationalImages >= 3 {
		score++
	}
	return clamp(score, 0, 3)
}

func freshnessScore(pm *model.PageModel) float64 {
	modified := pm.Dates.Modified
	if modified == nil {
		modified = pm.Dates.Published
	}
	if modified == nil {
		return 0
	}
	days := time.Since(*modified).Hours() / 24
	switch {
	case days <= 90:
		return 3
	case days <= 180:
		return 2
	case days <= 365:
		return 1
	default:
		return 0
	}
}

func mediaDiversityScore(pm *model.PageModel) float64 {
	if len(pm.Images) > 0 && len(pm.Tables) > 0 {
		return 1
	}
	return 0
}
