package score

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"aeoaudit/model"
)

// inlineCitationMarker matches bracketed numeric footnote/citation markers
// such as "[1]" or "[12]" in running paragraph text.
var inlineCitationMarker = regexp.MustCompile(`\[\d{1,3}\]`)

type authorityScorer struct {
	authoritativeHosts map[string]struct{}
}

// Authority builds the Authority scorer with a configured set of
// built-in-authoritative hosts (§4.E: "host on a built-in authoritative
// list"), in addition to the always-recognized .gov/.edu TLDs.
func Authority(authoritativeHosts []string) Scorer {
	set := make(map[string]struct{}, len(authoritativeHosts))
	for _, h := range authoritativeHosts {
		set[strings.ToLower(h)] = struct{}{}
	}
	return authorityScorer{authoritativeHosts: set}
}

func (authorityScorer) Name() model.CategoryName { return model.CategoryAuthority }

// Score implements §4.E "Authority (18)": domain trust (4), author (4),
// dates (4), citations (5), organization (3).
func (s authorityScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"domain_trust": s.domainTrust(pm),
		"author":       authorAuthority(pm),
		"dates":        dateAuthority(pm),
		"citations":    citations(pm),
		"organization": organizationAuthority(pm),
	}
	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryAuthority], SubScores: sub}
}

func (s authorityScorer) domainTrust(pm *model.PageModel) float64 {
	if !pm.IsHTTPS {
		return 0
	}
	u, err := url.Parse(pm.URL)
	if err == nil {
		host := strings.ToLower(u.Hostname())
		if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") {
			return 4
		}
		if _, ok := s.authoritativeHosts[host]; ok {
			return 4
		}
	}
	return 2
}

func authorAuthority(pm *model.PageModel) float64 {
	if !pm.Author.Found {
		return 0
	}
	for _, src := range pm.Author.Sources {
		if src == model.AuthorSourceJSONLD {
			return 4
		}
	}
	return 2
}

func dateAuthority(pm *model.PageModel) float64 {
	score := 0.0
	if pm.Dates.Published != nil {
		age := time.Since(*pm.Dates.Published)
		switch {
		case age <= 365*24*time.Hour:
			score += 3
		case age <= 2*365*24*time.Hour:
			score += 2
		case age <= 5*365*24*time.Hour:
			score += 1
		}
	}
	if pm.Dates.Modified != nil {
		score += 1
	}
	return clamp(score, 0, 4)
}

func citations(pm *model.PageModel) float64 {
	inlineMarkers := inlineCitationMarkerCount(pm)
	referencesSection := 0.0
	for _, h := range pm.Headings {
		lower := strings.ToLower(h.Text)
		if strings.Contains(lower, "references") || strings.Contains(lower, "sources") {
			referencesSection = 1
			break
		}
	}
	score := 0.5*float64(len(pm.ExternalLinks)) + float64(inlineMarkers) + referencesSection
	return clamp(score, 0, 5)
}

// inlineCitationMarkerCount counts bracketed numeric citation markers (e.g.
// "[1]", "[2]") across a page's paragraph text.
func inlineCitationMarkerCount(pm *model.PageModel) int {
	count := 0
	for _, p := range pm.Paragraphs {
		count += len(inlineCitationMarker.FindAllString(p.Text, -1))
	}
	return count
}

func organizationAuthority(pm *model.PageModel) float64 {
	for _, obj := range pm.JSONLD {
		if t, _ := obj["@type"].(string); t == "Organization" {
			if name, _ := obj["name"].(string); strings.TrimSpace(name) != "" {
				return 3
			}
		}
	}
	return 0
}
