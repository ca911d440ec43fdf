package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"aeoaudit/model"
)

// requiredFields lists the required-field-completeness contract per
// schema.org @type (§4.C "Schema").
var requiredFields = map[string][]string{
	"Article":      {"headline", "author", "datePublished"},
	"BlogPosting":  {"headline", "author", "datePublished"},
	"Person":       {"name"},
	"Organization": {"name"},
	"FAQPage":      {"mainEntity"},
	"HowTo":        {"name", "step"},
	"Product":      {"name", "offers"},
}

// Schema parses every <script type="application/ld+json">, flattens @graph,
// and builds FAQ schema and microdata/RDFa presence flags (§4.C "Schema").
func Schema(doc *goquery.Document, log *zap.Logger) (jsonld []map[string]any, faq model.FAQSchema, microdataPresent, rdfaPresent bool) {
	if log == nil {
		log = zap.NewNop()
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			// Malformed JSON-LD is tolerated silently (§7): record for
			// diagnostics and move on, never abort the page.
			log.Debug("skipping malformed json-ld block", zap.Error(err))
			return
		}
		jsonld = append(jsonld, flattenGraph(parsed)...)
	})

	microdataPresent = doc.Find("[itemscope]").Length() > 0
	rdfaPresent = doc.Find("[typeof], [property]").Length() > 0

	faq = buildFAQSchema(jsonld)

	return jsonld, faq, microdataPresent, rdfaPresent
}

func flattenGraph(v any) []map[string]any {
	var out []map[string]any
	switch t := v.(type) {
	case map[string]any:
		if graph, ok := t["@graph"]; ok {
			if list, ok := graph.([]any); ok {
				for _, item := range list {
					out = append(out, flattenGraph(item)...)
				}
				return out
			}
		}
		out = append(out, t)
	case []any:
		for _, item := range t {
			out = append(out, flattenGraph(item)...)
		}
	}
	return out
}

func buildFAQSchema(jsonld []map[string]any) model.FAQSchema {
	var faq model.FAQSchema
	for _, obj := range jsonld {
		if TypeOf(obj) != "FAQPage" {
			continue
		}
		entities, _ := obj["mainEntity"].([]any)
		for _, e := range entities {
			q, ok := e.(map[string]any)
			if !ok {
				continue
			}
			name, _ := q["name"].(string)
			answer := ""
			if acceptedAnswer, ok := q["acceptedAnswer"].(map[string]any); ok {
				answer, _ = acceptedAnswer["text"].(string)
			}
			valid := strings.TrimSpace(name) != "" && strings.TrimSpace(answer) != ""
			faq.Pairs = append(faq.Pairs, model.FAQPair{Question: name, Answer: answer, Valid: valid})
			if valid {
				faq.ValidCount++
			}
		}
	}
	return faq
}

// TypeOf reads a flattened JSON-LD object's @type, tolerating the
// array-valued form schema.org permits (e.g. "@type":["Article","NewsArticle"]),
// in which case the first entry is taken as the primary type.
func TypeOf(obj map[string]any) string {
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

// SchemaCompleteness returns, for a single JSON-LD object, the fraction of
// its required fields (per TypeOf(obj)) that are present and non-empty.
// Types with no required-field contract return 1.0 (vacuously complete).
func SchemaCompleteness(obj map[string]any) float64 {
	required, ok := requiredFields[TypeOf(obj)]
	if !ok || len(required) == 0 {
		return 1.0
	}
	present := 0
	for _, field := range required {
		if fieldPresent(obj[field]) {
			present++
		}
	}
	return float64(present) / float64(len(required))
}

func fieldPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
