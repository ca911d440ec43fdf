package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessQuality_PassThresholdIsExactlyThirty(t *testing.T) {
	html := "<html><body>" + strings.Repeat("<p>word word word.</p>", 50) + "</body></html>"
	result := AssessQuality(html)
	assert.Equal(t, 30, qualityPassThreshold)
	assert.GreaterOrEqual(t, result.Score, qualityPassThreshold)
	assert.True(t, result.Pass)
}

// A tiny body loses 30 (under 1000 bytes) and 30 (no <p>/<h1>/<h2>), so it
// scores 40 and still clears the gate of 30.
func TestAssessQuality_ShortBodyWithoutContentTagsScoresForty(t *testing.T) {
	result := AssessQuality("<html><body>hi</body></html>")
	assert.Equal(t, 40, result.Score)
	assert.True(t, result.Pass)
}

func TestAssessQuality_JavaScriptSentinelPenalized(t *testing.T) {
	withSentinel := AssessQuality("<html><body>" + strings.Repeat("x", 2000) + " please enable javascript</body></html>")
	withoutSentinel := AssessQuality("<html><body>" + strings.Repeat("x", 2000) + "</body></html>")
	assert.Less(t, withSentinel.Score, withoutSentinel.Score)
}

func TestAssessQuality_SPALoaderPenalized(t *testing.T) {
	result := AssessQuality(`<html><body><div id="root"></div></body></html>`)
	assert.False(t, result.Pass)
}

func TestAssessQuality_ParagraphDensityBonus(t *testing.T) {
	tenParagraphs := AssessQuality("<html><body>" + strings.Repeat("<p>content here</p>", 10) + strings.Repeat("x", 9000) + "</body></html>")
	twoParagraphs := AssessQuality("<html><body>" + strings.Repeat("<p>content here</p>", 2) + strings.Repeat("x", 9000) + "</body></html>")
	assert.Greater(t, tenParagraphs.Score, twoParagraphs.Score)
}

func TestIsBlockedResponse(t *testing.T) {
	blocked, reason := IsBlockedResponse("<html><body>Just a moment...</body></html>")
	assert.True(t, blocked)
	assert.Equal(t, "cloudflare_challenge", reason)

	blocked, _ = IsBlockedResponse("<html><body>hello world</body></html>")
	assert.False(t, blocked)
}
