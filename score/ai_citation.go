package score

import (
	"context"
	"strings"

	"aeoaudit/llmclient"
	"aeoaudit/model"
)

type aiCitationScorer struct {
	client *llmclient.Client
}

// AICitation builds the optional AI-Citation scorer (§4.E, 5 points). It is
// only computed when the operator has configured at least one LLM provider;
// with zero providers it returns a zero CategoryScore, disabling the
// category rather than failing the audit (§6, §9).
func AICitation(client *llmclient.Client) Scorer {
	return &aiCitationScorer{client: client}
}

func (aiCitationScorer) Name() model.CategoryName { return model.CategoryAICitation }

func (s *aiCitationScorer) Score(pm *model.PageModel, _ model.ContentClassification) model.CategoryScore {
	max := baseMax[model.CategoryAICitation]
	if s.client == nil || !s.client.Available() {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: map[string]float64{"disabled": 0}}
	}

	prompts := llmclient.GeneratePrompts(pm)
	if len(prompts) == 0 {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: map[string]float64{"no_prompts": 0}}
	}

	ctx := context.Background()
	engines := s.client.Engines()
	if len(engines) == 0 {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: map[string]float64{"disabled": 0}}
	}

	cited := 0
	totalQueries := 0
	var chunkSimilarities []float64
	targetTokens := keyTokens(pm.URL)

	// Each prompt is queried against every configured engine (up to three,
	// §4.E: "queried against the configured engines (expected: up to
	// three)"); citation_rate is over every (prompt, engine) pair, not per
	// prompt, since a single engine's silence shouldn't outweigh another's
	// citation of the same prompt.
	for _, prompt := range prompts {
		for _, engine := range engines {
			resp, err := engine.Query(ctx, prompt)
			if err != nil {
				continue
			}
			totalQueries++
			isCited, similarity := evaluateResponse(resp.Text, pm, targetTokens)
			if isCited {
				cited++
			}
			chunkSimilarities = append(chunkSimilarities, similarity)
		}
	}

	if totalQueries == 0 {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: map[string]float64{"no_responses": 0}}
	}

	citationRate := float64(cited) / float64(totalQueries)
	overallCosine := meanOf(chunkSimilarities)
	bestChunkMean := overallCosine // without per-chunk retrieval, the best-chunk mean degenerates to the response-level estimate
	alignment := 0.6*overallCosine + 0.4*bestChunkMean

	raw := clamp(citationRate/0.1*3, 0, 3) + alignment*2

	sub := map[string]float64{
		"citation_rate_component": clamp(citationRate/0.1*3, 0, 3),
		"alignment_component":     alignment * 2,
	}
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}

// evaluateResponse detects (i) target URL/domain mention, (ii) a verbatim
// quote of the first 40 chars of a paragraph of >= 10 chars, (iii) fact
// re-use (keyword similarity >= 0.9), and returns whether the page was
// "cited" plus a similarity proxy standing in for embedding cosine
// similarity (§4.E: this module has no embedding provider, so similarity is
// approximated by the fraction of the page's main content keywords that
// appear in the response).
func evaluateResponse(responseText string, pm *model.PageModel, targetTokens map[string]struct{}) (cited bool, similarity float64) {
	lower := strings.ToLower(responseText)

	urlMentioned := false
	for token := range targetTokens {
		if strings.Contains(lower, token) {
			urlMentioned = true
			break
		}
	}

	verbatimQuote := false
	for _, p := range pm.Paragraphs {
		if len(p.Text) >= 10 && strings.Contains(lower, strings.ToLower(p.Text[:min(len(p.Text), 40)])) {
			verbatimQuote = true
			break
		}
	}

	similarity = jaccardSimilarity(lower, pm.Keywords)
	factReuse := similarity >= 0.9

	cited = urlMentioned || verbatimQuote || factReuse
	return cited, similarity
}

func keyTokens(rawURL string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, part := range strings.FieldsFunc(rawURL, func(r rune) bool {
		return r == '/' || r == '.' || r == ':' || r == '-'
	}) {
		if len(part) > 3 {
			out[strings.ToLower(part)] = struct{}{}
		}
	}
	return out
}

func jaccardSimilarity(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

