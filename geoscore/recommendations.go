package geoscore

import (
	"fmt"
	"sort"

	"aeoaudit/model"
)

// recommendationText is keyed by component, one plain-English fix each,
// reworded from geo_scorer.py's _generate_recommendations rather than
// translated verbatim.
var recommendationText = map[model.GEOComponentName]string{
	model.GEOBrandFoundation: "Add or strengthen an about page, publish Organization schema with a name field, and mention the brand name consistently on every page.",
	model.GEOTopicCoverage:   "Broaden the topics covered and build out hub pages that link into several related articles each.",
	model.GEOConsistency:     "Mention the brand more consistently across pages and bring weaker pages up to the same quality bar as the rest of the site.",
	model.GEOAIRecall:        "Add comparison or ranked-list content (e.g. \"X vs Y\", \"Top N\") and standardize the brand name's capitalization across page titles.",
	model.GEOTrust:           "Serve every page over HTTPS and make sure author and published-date information is present and resolvable.",
}

// recommendations generates one line per component scoring below 60% of its
// max, most-deficient first (§4.G: "recommendations are generated, one per
// component scoring below 60% of its max").
func recommendations(components map[model.GEOComponentName]model.CategoryScore) []string {
	type deficit struct {
		name model.GEOComponentName
		pct  float64
	}
	var deficits []deficit
	for name, cs := range components {
		if cs.Percentage() < 60 {
			deficits = append(deficits, deficit{name, cs.Percentage()})
		}
	}
	sort.Slice(deficits, func(i, j int) bool {
		if deficits[i].pct != deficits[j].pct {
			return deficits[i].pct < deficits[j].pct
		}
		return deficits[i].name < deficits[j].name
	})

	out := make([]string, 0, len(deficits))
	for _, d := range deficits {
		text, ok := recommendationText[d.name]
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("%s (%.0f%%): %s", displayName(d.name), d.pct, text))
	}
	return out
}
