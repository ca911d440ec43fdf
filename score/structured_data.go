package score

import (
	"aeoaudit/extract"
	"aeoaudit/model"
)

type structuredDataScorer struct{}

func StructuredData() Scorer { return structuredDataScorer{} }

func (structuredDataScorer) Name() model.CategoryName { return model.CategoryStructuredData }

var coreSchemaTypes = map[string]struct{}{"Article": {}, "WebPage": {}, "Organization": {}}
var richSchemaTypes = map[string]struct{}{"FAQPage": {}, "HowTo": {}, "BreadcrumbList": {}}

// Score implements §4.E "Structured Data (15)": basic presence (5), schema
// quality (5), advanced (3), social metadata (2), with the "pity points"
// fallback when all four sub-scores are zero but the page has substantial
// title/description/heading signal.
func (structuredDataScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	sub := map[string]float64{
		"basic_presence":   basicPresence(pm),
		"schema_quality":   schemaQuality(pm),
		"advanced":         structuredAdvanced(pm),
		"social_metadata":  socialMetadata(pm),
	}

	if sub["basic_presence"] == 0 && sub["schema_quality"] == 0 && sub["advanced"] == 0 && sub["social_metadata"] == 0 {
		if len(pm.Title) > 10 && len(pm.Meta.Description) > 30 && len(pm.Headings) >= 5 {
			sub["basic_presence"] = 3
		}
	}

	return model.CategoryScore{Raw: sumSubScores(sub), Max: baseMax[model.CategoryStructuredData], SubScores: sub}
}

func basicPresence(pm *model.PageModel) float64 {
	score := 0.0
	if len(pm.JSONLD) > 0 {
		score += 3
	}
	if len(pm.Meta.OpenGraph) > 0 {
		score += 2
	}
	if pm.MicrodataPresent || pm.RDFaPresent {
		score += 2
	}
	return clamp(score, 0, 5)
}

func schemaQuality(pm *model.PageModel) float64 {
	score := 0.0
	hasCore, hasRich := false, false
	complete := 0
	for _, obj := range pm.JSONLD {
		t := extract.TypeOf(obj)
		if _, ok := coreSchemaTypes[t]; ok {
			hasCore = true
		}
		if _, ok := richSchemaTypes[t]; ok {
			hasRich = true
		}
		if extract.SchemaCompleteness(obj) >= 1.0 {
			complete++
		}
	}
	if hasCore {
		score += 3
	}
	if hasRich {
		score += 2
	}
	if len(pm.JSONLD) > 0 && float64(complete)/float64(len(pm.JSONLD)) >= 0.7 {
		score += 2
	}
	return clamp(score, 0, 5)
}

func structuredAdvanced(pm *model.PageModel) float64 {
	score := 0.0
	if pm.FAQ.ValidCount >= 3 {
		score += 2
	}
	for _, obj := range pm.JSONLD {
		if extract.TypeOf(obj) == "BreadcrumbList" {
			score += 1
			break
		}
	}
	return clamp(score, 0, 3)
}

func socialMetadata(pm *model.PageModel) float64 {
	score := 0.0
	og := pm.Meta.OpenGraph
	if og["title"] != "" && og["description"] != "" && og["image"] != "" {
		score += 1
	}
	if len(pm.Meta.Twitter) > 0 {
		score += 1
	}
	return clamp(score, 0, 2)
}
