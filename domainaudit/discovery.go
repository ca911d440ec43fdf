package domainaudit

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// sitemapCandidates is the ordered probe list (§4.G: "/sitemap.xml,
// /sitemap_index.xml, /sitemap-index.xml").
var sitemapCandidates = []string{"/sitemap.xml", "/sitemap_index.xml", "/sitemap-index.xml"}

// binaryExtensions are excluded from BFS-discovered links (§4.G).
var binaryExtensions = []string{
	".pdf", ".zip", ".png", ".jpg", ".jpeg", ".gif", ".svg",
	".mp4", ".mp3", ".css", ".js", ".woff", ".woff2",
}

// skipPathPatterns are excluded from BFS-discovered links (§4.G).
var skipPathPatterns = []string{"/login", "/cart", "/account", "/signin", "/signup", "/logout"}

const bfsMaxDepth = 2

// perHostRequestsPerSecond bounds how fast the discoverer hits any single
// host (§4.G "polite crawl": a rate limit per host, independent of the
// worker pool's page-audit concurrency).
const perHostRequestsPerSecond = 2

// sitemapDoc unmarshals both a sitemap index and a plain urlset: the
// namespace-less child element names ("sitemap", "url") match regardless
// of the document's actual root tag or default XML namespace.
type sitemapDoc struct {
	XMLName  xml.Name
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// Discoverer finds the URLs to audit for a domain (§4.G "URL discovery").
type Discoverer struct {
	client            *http.Client
	includeSubdomains bool
	userAgent         string
	log               *zap.Logger

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

func NewDiscoverer(userAgent string, includeSubdomains bool, log *zap.Logger) *Discoverer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Discoverer{
		client:            &http.Client{Timeout: 10 * time.Second},
		includeSubdomains: includeSubdomains,
		userAgent:         userAgent,
		log:               log,
		limiters:          make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the per-host token-bucket limiter for host, creating
// it on first use. Sitemap fetches and BFS crawl both route through
// fetchBody, so both share the same per-host limiter.
func (d *Discoverer) limiterFor(host string) *rate.Limiter {
	d.limiterMu.Lock()
	defer d.limiterMu.Unlock()
	lim, ok := d.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(perHostRequestsPerSecond), perHostRequestsPerSecond)
		d.limiters[host] = lim
	}
	return lim
}

// Discover returns the ordered list of URLs to audit for domainURL, capped
// at maxPages. Sitemap discovery is tried first; BFS crawl from the
// homepage is the fallback when no sitemap yields URLs.
func (d *Discoverer) Discover(ctx context.Context, domainURL string, maxPages int) ([]string, error) {
	base, err := url.Parse(domainURL)
	if err != nil {
		return nil, eris.Wrapf(err, "domainaudit: parse domain url %s", domainURL)
	}

	urls, err := d.fromSitemap(ctx, base)
	if err != nil {
		d.log.Debug("sitemap discovery failed", zap.Error(err))
	}
	if len(urls) > 0 {
		urls = d.filterSameDomain(base, dedupe(urls))
		return capAt(urls, maxPages), nil
	}

	urls, err = d.bfsCrawl(ctx, base, maxPages)
	if err != nil {
		return nil, eris.Wrap(err, "domainaudit: bfs crawl")
	}
	return capAt(urls, maxPages), nil
}

func (d *Discoverer) fromSitemap(ctx context.Context, base *url.URL) ([]string, error) {
	for _, path := range sitemapCandidates {
		target := *base
		target.Path = path
		target.RawQuery = ""

		body, ok := d.fetchBody(ctx, target.String())
		if !ok {
			continue
		}
		urls, sitemapRefs := parseSitemapDoc(body)
		if len(sitemapRefs) > 0 {
			for _, ref := range sitemapRefs {
				refBody, ok := d.fetchBody(ctx, ref)
				if !ok {
					continue
				}
				childURLs, _ := parseSitemapDoc(refBody)
				urls = append(urls, childURLs...)
			}
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}
	return nil, nil
}

func (d *Discoverer) fetchBody(ctx context.Context, target string) ([]byte, bool) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, false
	}
	if err := d.limiterFor(parsed.Host).Wait(ctx); err != nil {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, false
	}
	return body, true
}

// parseSitemapDoc returns (page urls, sitemap-index refs). Malformed XML
// yields two empty slices rather than an error; sitemap discovery is best
// effort and falls through to BFS crawl on failure.
func parseSitemapDoc(body []byte) ([]string, []string) {
	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, nil
	}
	urls := make([]string, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}
	refs := make([]string, 0, len(doc.Sitemaps))
	for _, s := range doc.Sitemaps {
		if loc := strings.TrimSpace(s.Loc); loc != "" {
			refs = append(refs, loc)
		}
	}
	return urls, refs
}

func (d *Discoverer) filterSameDomain(base *url.URL, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if d.sameRegistrableDomain(base, u) {
			out = append(out, raw)
		}
	}
	return out
}

func (d *Discoverer) sameRegistrableDomain(base, candidate *url.URL) bool {
	if candidate.Host == "" {
		return true // relative URLs resolved against base are implicitly same-domain
	}
	if strings.EqualFold(candidate.Host, base.Host) {
		return true
	}
	if !d.includeSubdomains {
		return false
	}
	baseRoot := registrableSuffix(base.Host)
	return strings.HasSuffix(strings.ToLower(candidate.Host), baseRoot)
}

func registrableSuffix(host string) string {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		clean := stripFragment(u)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func stripFragment(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		return raw[:i]
	}
	return raw
}

func capAt(urls []string, maxPages int) []string {
	if maxPages > 0 && len(urls) > maxPages {
		return urls[:maxPages]
	}
	return urls
}

type bfsNode struct {
	url   string
	depth int
}

// bfsCrawl implements the sitemap-less fallback: breadth-first from the
// homepage to bfsMaxDepth, same-domain anchors only, skip-pattern and
// binary-extension exclusion (§4.G).
func (d *Discoverer) bfsCrawl(ctx context.Context, base *url.URL, maxPages int) ([]string, error) {
	pageCap := maxPages
	if pageCap <= 0 {
		pageCap = domainHardCeiling
	}

	visited := map[string]struct{}{}
	discovered := map[string]struct{}{}
	queue := []bfsNode{{url: base.String(), depth: 0}}

	for len(queue) > 0 && len(discovered) < pageCap {
		node := queue[0]
		queue = queue[1:]

		if _, ok := visited[node.url]; ok {
			continue
		}
		visited[node.url] = struct{}{}

		body, ok := d.fetchBody(ctx, node.url)
		if !ok {
			continue
		}
		discovered[node.url] = struct{}{}

		if node.depth >= bfsMaxDepth {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
		if err != nil {
			continue
		}
		for _, link := range d.extractLinks(doc, node.url, base) {
			if _, ok := visited[link]; !ok {
				queue = append(queue, bfsNode{url: link, depth: node.depth + 1})
			}
		}
	}

	out := make([]string, 0, len(discovered))
	for u := range discovered {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

func (d *Discoverer) extractLinks(doc *goquery.Document, currentURL string, base *url.URL) []string {
	current, err := url.Parse(currentURL)
	if err != nil {
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		abs, err := current.Parse(href)
		if err != nil {
			return
		}
		if !d.sameRegistrableDomain(base, abs) {
			return
		}
		abs.Fragment = ""
		clean := abs.String()
		if shouldSkip(clean) {
			return
		}
		links = append(links, clean)
	})
	return dedupe(links)
}

func shouldSkip(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range skipPathPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
