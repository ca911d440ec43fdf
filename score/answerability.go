package score

import "aeoaudit/model"

type answerabilityScorer struct{}

func Answerability() Scorer { return answerabilityScorer{} }

func (answerabilityScorer) Name() model.CategoryName { return model.CategoryAnswerability }

// Score implements §4.E "Answerability (30)": direct-answer presence (12),
// question coverage (8), conciseness (6), formatting (4).
func (answerabilityScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"direct_answer_presence": directAnswerPresence(pm),
		"question_coverage":      questionCoverage(pm),
		"conciseness":            conciseness(pm),
		"formatting":             formatting(pm),
	}
	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryAnswerability], SubScores: sub}
}

func directAnswerPresence(pm *model.PageModel) float64 {
	score := 0.0
	if len(pm.Paragraphs) > 0 {
		wc := pm.Paragraphs[0].WordCount
		if wc >= 50 && wc <= 200 {
			score += 6
		} else {
			score += 3
		}
	}
	patternBonus := 0.0
	for _, p := range pm.AnswerPatterns {
		switch p.Kind {
		case model.PatternTLDR, model.PatternDefinition, model.PatternCallout:
			patternBonus += 2
		}
	}
	score += clamp(patternBonus, 0, 6)
	return clamp(score, 0, 12)
}

func questionCoverage(pm *model.PageModel) float64 {
	h2h3 := countHeadingLevels(pm, 2, 3)
	score := float64(len(pm.Questions))*0.8 + float64(h2h3)*0.5
	score = clamp(score, 0, 8)
	if pm.FAQ.ValidCount >= 3 {
		score = clamp(score+3, 0, 8)
	}
	return score
}

func conciseness(pm *model.PageModel) float64 {
	score := 0.0
	listBonus := 0.0
	for _, l := range pm.Lists {
		if len(l.Items) >= 3 {
			listBonus += 2
		}
	}
	score += clamp(listBonus, 0, 3)

	for _, p := range pm.AnswerPatterns {
		if p.Kind == model.PatternTLDR {
			score += 2
			break
		}
	}

	if len(pm.Paragraphs) >= 3 {
		total := 0
		for _, p := range pm.Paragraphs {
			total += p.WordCount
		}
		avg := float64(total) / float64(len(pm.Paragraphs))
		if avg <= 150 {
			score += 2
		}
	}
	return clamp(score, 0, 6)
}

func formatting(pm *model.PageModel) float64 {
	score := 0.0
	h1 := countHeadingLevels(pm, 1, 1)
	h2h3 := countHeadingLevels(pm, 2, 3)
	if h1 >= 1 && h2h3 >= 3 {
		score += 2
	}
	emphasisCount := 0
	for _, p := range pm.Paragraphs {
		if p.HasEmphasis {
			emphasisCount++
		}
	}
	if emphasisCount >= 3 {
		score += 1
	}
	for _, p := range pm.AnswerPatterns {
		if p.Kind == model.PatternCallout || p.Kind == model.PatternBlockquote {
			score += 1
			break
		}
	}
	return clamp(score, 0, 4)
}

func countHeadingLevels(pm *model.PageModel, lo, hi int) int {
	count := 0
	for _, h := range pm.Headings {
		if h.Level >= lo && h.Level <= hi {
			count++
		}
	}
	return count
}
