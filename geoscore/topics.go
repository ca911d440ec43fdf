package geoscore

import (
	"math"
	"regexp"
	"strings"

	"aeoaudit/model"
)

// scoreTopicCoverage implements §4.G's Topic Coverage component (25pts):
// distinct-topic breadth plus hub-and-spoke depth, both derived from the
// Semantic extractor's TF-IDF keyword output (no new fetches).
//
// PageModel carries no internal-link target list (only InternalLinksCount),
// so "hub page" is approximated the way geo_scorer.py's
// _analyze_topic_depth does it: a topic reinforced by several pages, not by
// literal outbound-link traversal. A page counts as a hub page when it
// belongs to a topic cluster of 3 or more pages.
func scoreTopicCoverage(pages []PageInput) model.CategoryScore {
	max := maxScores[model.GEOTopicCoverage]
	sub := map[string]float64{}

	clusters := clusterPagesByTopic(pages)
	distinctTopics := len(clusters)
	sub["topic_breadth"] = clamp(float64(distinctTopics)*2, 0, 15)

	hubPages := 0
	for _, cluster := range clusters {
		if len(cluster) >= 3 {
			hubPages += len(cluster)
		}
	}
	sub["hub_depth"] = clamp(float64(hubPages)*2, 0, 10)

	raw := sub["topic_breadth"] + sub["hub_depth"]
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}

// clusterPagesByTopic unions pages whose top-5 keyword sets overlap by at
// least 2 tokens, returning each resulting cluster as a list of page
// indices into pages.
func clusterPagesByTopic(pages []PageInput) [][]int {
	n := len(pages)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	topN := make([][]string, n)
	for i, p := range pages {
		topN[i] = topKeywords(p.Model, 5)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if overlapCount(topN[i], topN[j]) >= 2 {
				union(i, j)
			}
		}
	}

	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		if topN[i] == nil {
			continue
		}
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	clusters := make([][]int, 0, len(groups))
	for _, g := range groups {
		clusters = append(clusters, g)
	}
	return clusters
}

func topKeywords(pm *model.PageModel, k int) []string {
	if pm == nil || len(pm.Keywords) == 0 {
		return nil
	}
	if len(pm.Keywords) < k {
		k = len(pm.Keywords)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = strings.ToLower(pm.Keywords[i])
	}
	return out
}

func overlapCount(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, kw := range a {
		set[kw] = struct{}{}
	}
	count := 0
	for _, kw := range b {
		if _, ok := set[kw]; ok {
			count++
		}
	}
	return count
}

// scoreConsistency implements §4.G's Consistency component (20pts):
// brand-mention coverage plus low variance across page overall scores.
func scoreConsistency(pages []PageInput, brandName string) model.CategoryScore {
	max := maxScores[model.GEOConsistency]
	sub := map[string]float64{}
	if len(pages) == 0 {
		return model.CategoryScore{Raw: 0, Max: max, SubScores: sub}
	}

	ubiquity := brandMentionUbiquity(pages, brandName)
	sub["brand_mention_coverage"] = ubiquity * 12

	overalls := make([]float64, 0, len(pages))
	for _, p := range pages {
		overalls = append(overalls, p.Audit.OverallScore)
	}
	mean := meanF(overalls)
	if mean > 0 {
		ratio := stddevF(overalls, mean) / mean
		sub["score_stability"] = clamp(8*(1-ratio), 0, 8)
	}

	raw := sub["brand_mention_coverage"] + sub["score_stability"]
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}

func meanF(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func stddevF(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

var comparisonHeadingRe = regexp.MustCompile(`(?i)vs\.?|comparison|top \d+|best \d+`)

// scoreAIRecall implements §4.G's AI Recall component (15pts): comparative
// or listicle structure, plus uniform brand-name capitalization across
// title tags.
func scoreAIRecall(pages []PageInput, brandName string) model.CategoryScore {
	max := maxScores[model.GEOAIRecall]
	sub := map[string]float64{}

	comparativePages := 0
	for _, p := range pages {
		if p.Model == nil {
			continue
		}
		if hasComparativeStructure(p.Model) {
			comparativePages++
		}
	}
	if comparativePages >= 2 {
		sub["comparative_structure"] = 8
	}

	sub["naming_consistency"] = brandNamingConsistency(pages, brandName) * 7

	raw := sub["comparative_structure"] + sub["naming_consistency"]
	return model.CategoryScore{Raw: clamp(raw, 0, max), Max: max, SubScores: sub}
}

func hasComparativeStructure(pm *model.PageModel) bool {
	for _, l := range pm.Lists {
		if len(l.Items) < 3 {
			continue
		}
		if comparisonHeadingRe.MatchString(l.ParentHeading) {
			return true
		}
	}
	for _, h := range pm.Headings {
		if !comparisonHeadingRe.MatchString(h.Text) {
			continue
		}
		for _, l := range pm.Lists {
			if l.ParentHeading == h.Text && len(l.Items) >= 3 {
				return true
			}
		}
	}
	return false
}

var brandTokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// brandNamingConsistency returns the fraction of brand-token occurrences in
// page titles that share the most common exact spelling/casing (§4.G
// "how uniformly the brand name is capitalized and spelled across all
// pages' title tags").
func brandNamingConsistency(pages []PageInput, brandName string) float64 {
	if brandName == "" {
		return 0
	}
	lowerBrand := strings.ToLower(brandName)

	spellings := map[string]int{}
	total := 0
	for _, p := range pages {
		if p.Model == nil || p.Model.Title == "" {
			continue
		}
		for _, token := range brandTokenRe.FindAllString(p.Model.Title, -1) {
			if strings.ToLower(token) == lowerBrand {
				spellings[token]++
				total++
			}
		}
	}
	if total == 0 {
		return 0
	}
	best := 0
	for _, c := range spellings {
		if c > best {
			best = c
		}
	}
	return float64(best) / float64(total)
}
