// Package geoscore computes the brand-level GEO (Generative Engine
// Optimization) inclusion-readiness score from an already-audited set of a
// domain's pages (§4.G GEO score, §3 GEOScore). It runs no fetches of its
// own; every component scans PageModels and PageAudits the domain
// orchestrator already produced, across five additive components (Brand
// Foundation, Topic Coverage, Consistency, AI Recall, Trust).
package geoscore

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"aeoaudit/model"
)

// maxScores mirrors geo_scorer.py's GEOScorer.max_scores table.
var maxScores = map[model.GEOComponentName]float64{
	model.GEOBrandFoundation: 30,
	model.GEOTopicCoverage:   25,
	model.GEOConsistency:     20,
	model.GEOAIRecall:        15,
	model.GEOTrust:           10,
}

// PageInput pairs an extracted PageModel with the PageAudit scored from it;
// GEO components read both (content signals from the model, overall score
// variance from the audit).
type PageInput struct {
	Model *model.PageModel
	Audit model.PageAudit
}

// Compute builds the GEOScore for domain from its audited pages. brandName
// is the domain's registrable-name token (e.g. "acme" for acme.com);
// callers typically derive it with BrandNameFromDomain.
func Compute(domain, brandName string, pages []PageInput) *model.GEOScore {
	components := map[model.GEOComponentName]model.CategoryScore{
		model.GEOBrandFoundation: scoreBrandFoundation(pages, brandName),
		model.GEOTopicCoverage:   scoreTopicCoverage(pages),
		model.GEOConsistency:     scoreConsistency(pages, brandName),
		model.GEOAIRecall:        scoreAIRecall(pages, brandName),
		model.GEOTrust:           scoreTrust(pages),
	}

	overall := 0.0
	for _, cs := range components {
		overall += cs.Raw
	}
	overall = clamp(overall, 0, 100)

	return &model.GEOScore{
		Overall:         overall,
		Grade:           grade(overall),
		Components:      components,
		Summary:         summary(overall, components),
		Recommendations: recommendations(components),
	}
}

// BrandNameFromDomain extracts the registrable-name token used by every GEO
// component's brand-mention matching: the label immediately left of the
// public suffix, e.g. "acme.co.uk" -> "acme", "acme.com" -> "acme".
func BrandNameFromDomain(domain string) string {
	host := domain
	if u, err := url.Parse(domain); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.TrimPrefix(host, "www.")
	labels := strings.Split(host, ".")
	if len(labels) == 0 {
		return host
	}
	// Two-label TLDs (co.uk, com.au, ...) leave the brand one label further
	// left; a short heuristic suffices since this token is only used for
	// fuzzy brand-mention matching, not DNS resolution.
	if len(labels) >= 3 && len(labels[len(labels)-2]) <= 3 {
		return labels[len(labels)-3]
	}
	if len(labels) >= 2 {
		return labels[len(labels)-2]
	}
	return labels[0]
}

// grade reuses the same letter thresholds as the per-page score; GEO and AEO
// grades share one scale per §4.G ("grade" on GEOScore has the same shape as
// PageAudit.Grade).
func grade(overall float64) string {
	thresholds := []struct {
		Min   float64
		Grade string
	}{
		{90, "A+"}, {85, "A"}, {80, "A-"}, {75, "B+"}, {70, "B"},
		{65, "B-"}, {60, "C+"}, {55, "C"}, {50, "C-"},
	}
	for _, t := range thresholds {
		if overall >= t.Min {
			return t.Grade
		}
	}
	return "F"
}

// summary names the total and the weakest component (§4.G: "one-line
// templated string naming the total and the weakest component").
func summary(overall float64, components map[model.GEOComponentName]model.CategoryScore) string {
	weakest, weakestPct := model.GEOComponentName(""), 101.0
	names := make([]model.GEOComponentName, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	for _, name := range names {
		pct := components[name].Percentage()
		if pct < weakestPct {
			weakestPct = pct
			weakest = name
		}
	}
	if weakest == "" {
		return fmt.Sprintf("GEO score %.0f/100 (%s)", overall, grade(overall))
	}
	return fmt.Sprintf("GEO score %.0f/100 (%s); weakest area is %s at %.0f%%",
		overall, grade(overall), displayName(weakest), weakestPct)
}

func displayName(name model.GEOComponentName) string {
	switch name {
	case model.GEOBrandFoundation:
		return "brand foundation"
	case model.GEOTopicCoverage:
		return "topic coverage"
	case model.GEOConsistency:
		return "consistency"
	case model.GEOAIRecall:
		return "AI recall"
	case model.GEOTrust:
		return "trust"
	default:
		return string(name)
	}
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
