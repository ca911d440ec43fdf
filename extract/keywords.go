package extract

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

var tokenRe = regexp.MustCompile(`[a-zA-Z0-9']+`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "he": {}, "her": {}, "his": {},
	"if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "our": {}, "she": {}, "that": {}, "the": {}, "their": {}, "there": {},
	"they": {}, "this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "will": {},
	"with": {}, "you": {}, "your": {},
}

var foldCase = cases.Fold(cases.Compact)

// TopKeywords returns the top-K unigrams and bigrams over text by TF-IDF-
// style frequency weighting, with English stop-words excluded (§4.C
// "Semantic": main-keywords). Using a single document the "IDF" term
// degenerates to a constant, so this ranks by term frequency with stop-word
// exclusion: each unigram occurrence counts 1 and each bigram occurrence
// counts 0.6, matching the spirit of TF-IDF scoring without requiring a
// corpus.
func TopKeywords(text string, k int) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	freq := map[string]float64{}
	for _, tok := range tokens {
		freq[tok]++
	}
	for i := 0; i < len(tokens)-1; i++ {
		bigram := tokens[i] + " " + tokens[i+1]
		freq[bigram] += 0.6
	}

	type scored struct {
		term  string
		score float64
	}
	var all []scored
	for term, count := range freq {
		all = append(all, scored{term: term, score: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].term < all[j].term
	})

	if k > len(all) {
		k = len(all)
	}
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, all[i].term)
	}
	return out
}

func tokenize(text string) []string {
	folded := foldCase.String(text)
	raw := tokenRe.FindAllString(folded, -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.Trim(tok, "'")
		if len(tok) < 3 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
