package score

import (
	"regexp"
	"strings"

	"aeoaudit/model"
)

type citationabilityScorer struct{}

func Citationability() Scorer { return citationabilityScorer{} }

func (citationabilityScorer) Name() model.CategoryName { return model.CategoryCitationability }

var statisticRe = regexp.MustCompile(`\d+(\.\d+)?\s*%|\$\s?\d|\d{4,}`)
var definitionRe2 = regexp.MustCompile(`(?i)\bis defined as\b|\brefers to\b|\bmeans\b`)
var popupMarkerRe = regexp.MustCompile(`(?i)paywall|subscribe to continue|sign up to read`)

// Score implements §4.E "Citationability (12)": fact density (4),
// structured data (3), security (2), trust hygiene (3).
func (citationabilityScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"fact_density":     factDensity(pm),
		"structured_data":  citationStructuredData(pm),
		"security":         securityScore(pm),
		"trust_hygiene":    trustHygiene(pm),
	}
	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryCitationability], SubScores: sub}
}

func factDensity(pm *model.PageModel) float64 {
	sentencesWithStats := 0
	definitions := 0
	for _, p := range pm.Paragraphs {
		for _, sentence := range splitSentences(p.Text) {
			if statisticRe.MatchString(sentence) {
				sentencesWithStats++
			}
			if definitionRe2.MatchString(sentence) {
				definitions++
			}
		}
	}
	score := float64(sentencesWithStats)*0.2 + float64(definitions)*0.3
	return clamp(score, 0, 4)
}

func citationStructuredData(pm *model.PageModel) float64 {
	tablesWithRows := 0
	for _, t := range pm.Tables {
		if len(t.Rows) >= 3 {
			tablesWithRows++
		}
	}
	listsWithItems := 0
	for _, l := range pm.Lists {
		if len(l.Items) >= 4 {
			listsWithItems++
		}
	}
	score := float64(tablesWithRows)*0.5 + float64(listsWithItems)*0.2
	return clamp(score, 0, 3)
}

func securityScore(pm *model.PageModel) float64 {
	if pm.IsHTTPS {
		return 2
	}
	return 0
}

func trustHygiene(pm *model.PageModel) float64 {
	score := 0.0
	hasPopup := false
	for _, p := range pm.Paragraphs {
		if popupMarkerRe.MatchString(p.Text) {
			hasPopup = true
			break
		}
	}
	if !hasPopup {
		score += 1
	}

	hasByline := pm.Author.Found
	hasReferences := false
	for _, h := range pm.Headings {
		lower := strings.ToLower(h.Text)
		if strings.Contains(lower, "references") || strings.Contains(lower, "sources") {
			hasReferences = true
			break
		}
	}
	if hasByline || hasReferences {
		score += 2
	}
	return score
}

func splitSentences(text string) []string {
	return regexp.MustCompile(`[.!?]+\s*`).Split(text, -1)
}
