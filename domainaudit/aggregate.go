package domainaudit

import (
	"sort"

	"aeoaudit/model"
	"aeoaudit/score"
)

// Aggregate builds the DomainAudit from successful per-page results (§4.G
// "Aggregation"). The domain overall score is the mean of per-page overall
// scores, never a re-score of averaged sub-scores, per §4.G and §8
// invariant 4 (non-linear per-category rules don't distribute over
// averaging).
func Aggregate(domain string, discovered []string, results []pageResult) model.DomainAudit {
	successful := make([]pageResult, 0, len(results))
	for _, r := range results {
		if r.err == nil {
			successful = append(successful, r)
		}
	}

	breakdown := map[model.CategoryName]model.CategoryAggregate{}
	for _, name := range allCategoryNames(successful) {
		breakdown[name] = aggregateCategory(name, successful)
	}

	overallSum := 0.0
	bestURL, worstURL := "", ""
	bestScore, worstScore := -1.0, 101.0
	for _, r := range successful {
		overallSum += r.audit.OverallScore
		if r.audit.OverallScore > bestScore {
			bestScore = r.audit.OverallScore
			bestURL = r.url
		}
		if r.audit.OverallScore < worstScore {
			worstScore = r.audit.OverallScore
			worstURL = r.url
		}
	}

	overall := 0.0
	if len(successful) > 0 {
		overall = overallSum / float64(len(successful))
	}

	return model.DomainAudit{
		Domain:          domain,
		PagesAudited:    len(discovered),
		PagesSuccessful: len(successful),
		OverallScore:    overall,
		Grade:           score.Grade(overall),
		Breakdown:       breakdown,
		BestPage:        bestURL,
		WorstPage:       worstURL,
	}
}

func allCategoryNames(results []pageResult) []model.CategoryName {
	seen := map[model.CategoryName]struct{}{}
	var names []model.CategoryName
	for _, r := range results {
		for name := range r.audit.Breakdown {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	return names
}

func aggregateCategory(name model.CategoryName, results []pageResult) model.CategoryAggregate {
	var (
		sumRaw, sumMax float64
		pageScores     []model.PageCategoryScore
		bestURL        string
		worstURL       string
		bestPct        = -1.0
		worstPct       = 101.0
	)

	for _, r := range results {
		cs, ok := r.audit.Breakdown[name]
		if !ok {
			continue
		}
		sumRaw += cs.Raw
		sumMax += cs.Max
		pageScores = append(pageScores, model.PageCategoryScore{URL: r.url, Score: cs})

		pct := cs.Percentage()
		if pct > bestPct {
			bestPct = pct
			bestURL = r.url
		}
		if pct < worstPct {
			worstPct = pct
			worstURL = r.url
		}
	}

	sort.Slice(pageScores, func(i, j int) bool { return pageScores[i].URL < pageScores[j].URL })

	n := float64(len(pageScores))
	meanScore, meanMax := 0.0, 0.0
	if n > 0 {
		meanScore = sumRaw / n
		meanMax = sumMax / n
	}

	return model.CategoryAggregate{
		MeanScore:  meanScore,
		MeanMax:    meanMax,
		PageScores: pageScores,
		BestPage:   bestURL,
		WorstPage:  worstURL,
	}
}
