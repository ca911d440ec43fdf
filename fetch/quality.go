package fetch

import (
	"regexp"
	"strings"
)

// QualityResult is the outcome of the HTTP-result quality gate (§4.A).
type QualityResult struct {
	Score int
	Pass  bool
}

const qualityPassThreshold = 30

var (
	paragraphTagRe  = regexp.MustCompile(`(?i)<p[\s>]`)
	h1TagRe         = regexp.MustCompile(`(?i)<h1[\s>]`)
	h2TagRe         = regexp.MustCompile(`(?i)<h2[\s>]`)
	spaRootDivRe    = regexp.MustCompile(`(?i)<div\s+id=["']?(root|app)["']?\s*>\s*</div>`)
	jsHeavySignalRe = regexp.MustCompile(`(?i)ng-version|__next|data-reactroot`)
)

// AssessQuality implements the exact arithmetic of §4.A: score starts at
// 100, subtract 30 if body < 1000 bytes, 40 if a "please enable
// JavaScript" sentinel is present, 30 if none of <p>/<h1>/<h2> appear, 20 if
// the body looks like a bare SPA loader. Add 10 if body > 10KB, 10 if >= 10
// paragraph elements. Pass iff score >= 30.
func AssessQuality(html string) QualityResult {
	score := 100

	if len(html) < 1000 {
		score -= 30
	}

	lower := strings.ToLower(html)
	if strings.Contains(lower, "please enable javascript") {
		score -= 40
	}

	if !paragraphTagRe.MatchString(html) && !h1TagRe.MatchString(html) && !h2TagRe.MatchString(html) {
		score -= 30
	}

	if looksLikeSPALoader(html) {
		score -= 20
	}

	if len(html) > 10*1024 {
		score += 10
	}

	if countOccurrences(paragraphTagRe, html) >= 10 {
		score += 10
	}

	return QualityResult{
		Score: score,
		Pass:  score >= qualityPassThreshold,
	}
}

func looksLikeSPALoader(html string) bool {
	if spaRootDivRe.MatchString(html) {
		return true
	}
	lower := strings.ToLower(html)
	if strings.Contains(lower, "loading…") || strings.Contains(lower, "loading...") {
		if !paragraphTagRe.MatchString(html) {
			return true
		}
	}
	return jsHeavySignalRe.MatchString(html) && !paragraphTagRe.MatchString(html)
}

func countOccurrences(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}
