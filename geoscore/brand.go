package geoscore

import (
	"net/url"
	"regexp"
	"strings"

	"aeoaudit/model"
)

var aboutTitleRe = regexp.MustCompile(`(?i)^about|what is`)

// scoreBrandFoundation implements §4.G's Brand Foundation component (30pts):
// an about page, Organization schema, and brand-mention ubiquity across the
// audited pages.
func scoreBrandFoundation(pages []PageInput, brandName string) model.CategoryScore {
	max := maxScores[model.GEOBrandFoundation]
	sub := map[string]float64{}

	if hasAboutPage(pages) {
		sub["about_page"] = 10
	}
	if hasOrganizationSchema(pages) {
		sub["organization_schema"] = 8
	}

	ubiquity := brandMentionUbiquity(pages, brandName)
	sub["brand_mention_ubiquity"] = ubiquity * 12

	raw := 0.0
	for _, v := range sub {
		raw += v
	}
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}

func hasAboutPage(pages []PageInput) bool {
	for _, p := range pages {
		if p.Model == nil {
			continue
		}
		if u, err := url.Parse(p.Model.URL); err == nil && strings.Contains(strings.ToLower(u.Path), "/about") {
			return true
		}
		if aboutTitleRe.MatchString(p.Model.Title) {
			return true
		}
		for _, h := range p.Model.Headings {
			if h.Level == 1 && aboutTitleRe.MatchString(h.Text) {
				return true
			}
		}
	}
	return false
}

func hasOrganizationSchema(pages []PageInput) bool {
	for _, p := range pages {
		if p.Model == nil {
			continue
		}
		for _, obj := range p.Model.JSONLD {
			if jsonldType(obj) == "Organization" {
				if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
					return true
				}
			}
		}
	}
	return false
}

// jsonldType reads a flattened JSON-LD object's @type, tolerating the
// array-valued form schema.org permits.
func jsonldType(obj map[string]any) string {
	switch t := obj["@type"].(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func brandMentionUbiquity(pages []PageInput, brandName string) float64 {
	if len(pages) == 0 || brandName == "" {
		return 0
	}
	needle := strings.ToLower(brandName)
	mentioned := 0
	for _, p := range pages {
		if p.Model == nil {
			continue
		}
		if pageMentionsBrand(p.Model, needle) {
			mentioned++
		}
	}
	return float64(mentioned) / float64(len(pages))
}

func pageMentionsBrand(pm *model.PageModel, lowerBrand string) bool {
	if strings.Contains(strings.ToLower(pm.Title), lowerBrand) {
		return true
	}
	for _, h := range pm.Headings {
		if h.Level == 1 && strings.Contains(strings.ToLower(h.Text), lowerBrand) {
			return true
		}
	}
	if len(pm.Paragraphs) > 0 && strings.Contains(strings.ToLower(pm.Paragraphs[0].Text), lowerBrand) {
		return true
	}
	return false
}

// scoreTrust implements §4.G's Trust component (10pts): HTTPS coverage,
// resolved-author coverage, resolved-published-date coverage.
func scoreTrust(pages []PageInput) model.CategoryScore {
	max := maxScores[model.GEOTrust]
	sub := map[string]float64{}
	if len(pages) == 0 {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: sub}
	}

	httpsCount, authorCount, dateCount := 0, 0, 0
	for _, p := range pages {
		if p.Model == nil {
			continue
		}
		if p.Model.IsHTTPS {
			httpsCount++
		}
		if p.Model.Author.Found {
			authorCount++
		}
		if p.Model.Dates.Published != nil {
			dateCount++
		}
	}
	n := float64(len(pages))

	if float64(httpsCount)/n >= 0.9 {
		sub["https_coverage"] = 4
	}
	if float64(authorCount)/n >= 0.5 {
		sub["author_coverage"] = 3
	}
	if float64(dateCount)/n >= 0.5 {
		sub["date_coverage"] = 3
	}

	raw := 0.0
	for _, v := range sub {
		raw += v
	}
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}
