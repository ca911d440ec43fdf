// Package classify implements the Content Classifier (§4.D): it assigns one
// of four content types by consulting signals in priority order and
// stopping at the first confident match. Classification is advisory input
// to the scorer, never a gate.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"aeoaudit/model"
)

var schemaTypeMap = map[string]model.ContentType{
	"Article":          model.ContentTypeInformational,
	"BlogPosting":       model.ContentTypeInformational,
	"Event":             model.ContentTypeExperiential,
	"Place":             model.ContentTypeExperiential,
	"TouristAttraction": model.ContentTypeExperiential,
	"Product":           model.ContentTypeTransactional,
	"Offer":             model.ContentTypeTransactional,
	"CollectionPage":    model.ContentTypeNavigational,
	"ItemList":          model.ContentTypeNavigational,
}

var urlPathRules = []struct {
	re string
	ct model.ContentType
}{
	{`/experience|/event|/tour`, model.ContentTypeExperiential},
	{`/blog|/guide|/how-to|/faq`, model.ContentTypeInformational},
	{`/product|/shop|/pricing`, model.ContentTypeTransactional},
	{`/category|/archive|/tag`, model.ContentTypeNavigational},
}

var contentHeuristicKeywords = map[model.ContentType][]string{
	model.ContentTypeExperiential:  {"experience", "journey", "story"},
	model.ContentTypeInformational: {"how to", "guide", "learn"},
	model.ContentTypeTransactional: {"buy", "price", "specifications"},
}

// contentHeuristicOrder fixes the tie-break order for contentHeuristics: Go
// map iteration order is randomized, so ranging over contentHeuristicKeywords
// directly would let the winning content type vary run to run whenever two
// categories tie on keyword count. Ties resolve to whichever category comes
// first here.
var contentHeuristicOrder = []model.ContentType{
	model.ContentTypeInformational,
	model.ContentTypeExperiential,
	model.ContentTypeTransactional,
	model.ContentTypeNavigational,
}

// Classify implements the four-tier signal priority of §4.D.
func Classify(pm *model.PageModel) model.ContentClassification {
	if ct, ok := explicitMetaType(pm.Meta.AEOContentType); ok {
		return model.ContentClassification{
			Type:           ct,
			Confidence:     model.ConfidenceHigh,
			SignalsMatched: []string{"meta:aeo:content-type"},
		}
	}

	if ct, ok := dominantSchemaType(pm.JSONLD); ok {
		return model.ContentClassification{
			Type:           ct,
			Confidence:     model.ConfidenceHigh,
			SignalsMatched: []string{"schema_type"},
		}
	}

	if ct, ok := urlPathType(pm.URL); ok {
		return model.ContentClassification{
			Type:           ct,
			Confidence:     model.ConfidenceMedium,
			SignalsMatched: []string{"url_path"},
		}
	}

	ct, confidence, signals := contentHeuristics(pm)
	return model.ContentClassification{Type: ct, Confidence: confidence, SignalsMatched: signals}
}

func explicitMetaType(raw string) (model.ContentType, bool) {
	switch model.ContentType(strings.ToLower(strings.TrimSpace(raw))) {
	case model.ContentTypeInformational:
		return model.ContentTypeInformational, true
	case model.ContentTypeExperiential:
		return model.ContentTypeExperiential, true
	case model.ContentTypeTransactional:
		return model.ContentTypeTransactional, true
	case model.ContentTypeNavigational:
		return model.ContentTypeNavigational, true
	default:
		return "", false
	}
}

func dominantSchemaType(jsonld []map[string]any) (model.ContentType, bool) {
	counts := map[model.ContentType]int{}
	for _, obj := range jsonld {
		t, _ := obj["@type"].(string)
		if ct, ok := schemaTypeMap[t]; ok {
			counts[ct]++
		}
	}
	if len(counts) != 1 {
		return "", false
	}
	for ct := range counts {
		return ct, true
	}
	return "", false
}

func urlPathType(rawURL string) (model.ContentType, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	path := strings.ToLower(u.Path)
	for _, rule := range urlPathRules {
		if regexp.MustCompile(rule.re).MatchString(path) {
			return rule.ct, true
		}
	}
	return "", false
}

func contentHeuristics(pm *model.PageModel) (model.ContentType, model.Confidence, []string) {
	text := strings.ToLower(mainText(pm))

	best := model.ContentTypeInformational
	bestCount := 0
	var signals []string
	for _, ct := range contentHeuristicOrder {
		count := 0
		for _, kw := range contentHeuristicKeywords[ct] {
			if strings.Contains(text, kw) {
				count++
			}
		}
		if count > bestCount {
			best = ct
			bestCount = count
			signals = []string{"content_heuristics:" + string(ct)}
		}
	}

	if bestCount == 0 {
		return model.ContentTypeInformational, model.ConfidenceLow, nil
	}

	structuralHints := structuralHintCount(pm)
	if bestCount+structuralHints >= 3 {
		return best, model.ConfidenceMedium, signals
	}
	return best, model.ConfidenceLow, signals
}

func mainText(pm *model.PageModel) string {
	var sb strings.Builder
	for _, p := range pm.Paragraphs {
		sb.WriteString(p.Text)
		sb.WriteString(" ")
	}
	return sb.String()
}

// structuralHintCount scores galleries, forms, and Q&A density as extra
// heuristic signal (§4.D "Content heuristics").
func structuralHintCount(pm *model.PageModel) int {
	hints := 0
	if len(pm.Images) >= 4 {
		hints++
	}
	if len(pm.Questions) >= 2 {
		hints++
	}
	return hints
}
