package domainaudit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_PrefersSitemap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
			<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
				<url><loc>` + testServerURL(r) + `/a</loc></url>
				<url><loc>` + testServerURL(r) + `/b</loc></url>
			</urlset>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := NewDiscoverer("testbot/1.0", false, nil)
	urls, err := d.Discover(context.Background(), server.URL, 10)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestDiscover_RecursesSitemapIndexOneLevel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
			<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
				<sitemap><loc>` + testServerURL(r) + `/sub.xml</loc></sitemap>
			</sitemapindex>`))
	})
	mux.HandleFunc("/sub.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
			<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
				<url><loc>` + testServerURL(r) + `/c</loc></url>
			</urlset>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := NewDiscoverer("testbot/1.0", false, nil)
	urls, err := d.Discover(context.Background(), server.URL, 10)

	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Contains(t, urls[0], "/c")
}

func TestDiscover_FallsBackToBFSWhenNoSitemap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/page1">one</a><a href="/login">skip me</a></body></html>`))
	})
	mux.HandleFunc("/page1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>leaf page</body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := NewDiscoverer("testbot/1.0", false, nil)
	urls, err := d.Discover(context.Background(), server.URL, 10)

	require.NoError(t, err)
	assert.NotEmpty(t, urls)
	for _, u := range urls {
		assert.NotContains(t, u, "/login")
	}
}

func TestShouldSkip_ExcludesBinaryExtensionsAndSkipPatterns(t *testing.T) {
	assert.True(t, shouldSkip("https://example.com/brochure.pdf"))
	assert.True(t, shouldSkip("https://example.com/account/settings"))
	assert.False(t, shouldSkip("https://example.com/blog/post-one"))
}

func testServerURL(r *http.Request) string {
	return "http://" + r.Host
}

func TestLimiterFor_ReturnsSameLimiterForSameHostAndDistinctForOtherHosts(t *testing.T) {
	d := NewDiscoverer("testbot/1.0", false, nil)

	a1 := d.limiterFor("example.com")
	a2 := d.limiterFor("example.com")
	b := d.limiterFor("other.example")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
}

func TestFetchBody_RespectsPerHostRateLimit(t *testing.T) {
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := NewDiscoverer("testbot/1.0", false, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, ok := d.fetchBody(context.Background(), server.URL)
		require.True(t, ok)
	}
	elapsed := time.Since(start)

	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
	// burst is 2 at perHostRequestsPerSecond; the 3rd request on the same
	// host must wait for a refilled token rather than firing immediately.
	assert.GreaterOrEqual(t, elapsed, 400*time.Millisecond)
}
