package htmldom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_PrefersMainOverArticle(t *testing.T) {
	html := `<html><body><article>wrong</article><main><p>right</p></main></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	require.Contains(t, doc.Main.Text(), "right")
}

func TestParse_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>only body content here</p></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	require.Contains(t, doc.Main.Text(), "only body content here")
}

func TestParse_StripsNoiseElements(t *testing.T) {
	html := `<html><body><main><nav>skip</nav><p class="sponsored">ad text</p><p>keep me</p></main></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	text := doc.Main.Text()
	require.NotContains(t, text, "skip")
	require.NotContains(t, text, "ad text")
	require.Contains(t, text, "keep me")
}

func TestNormalizeWhitespace(t *testing.T) {
	require.Equal(t, "a b c", NormalizeWhitespace("  a\n  b\t c  "))
}

func TestParse_DoesNotStripClassesThatOnlyContainNoiseWordAsSubstring(t *testing.T) {
	html := `<html><body><main>
		<h2 class="article-heading">Real heading</h2>
		<p class="shadow">shadow text</p>
		<p class="gradient">gradient text</p>
		<p class="thread">thread text</p>
		<p class="download">download text</p>
	</main></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	text := doc.Main.Text()
	require.Contains(t, text, "Real heading")
	require.Contains(t, text, "shadow text")
	require.Contains(t, text, "gradient text")
	require.Contains(t, text, "thread text")
	require.Contains(t, text, "download text")
}

func TestParse_StripsHyphenatedNoiseClass(t *testing.T) {
	html := `<html><body><main><div class="google-ad-slot">ad</div><p>keep me</p></main></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	text := doc.Main.Text()
	require.NotContains(t, text, "ad")
	require.Contains(t, text, "keep me")
}

func TestParse_StripsCompoundNoiseTokenSequence(t *testing.T) {
	html := `<html><body><main><div class="cookie-banner">consent</div><p>keep me</p></main></body></html>`
	doc, err := Parse(html)
	require.NoError(t, err)
	text := doc.Main.Text()
	require.NotContains(t, text, "consent")
	require.Contains(t, text, "keep me")
}
