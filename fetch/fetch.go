// Package fetch implements the Adaptive Fetch Engine: a two-strategy
// fetcher that prefers cheap HTTP but escalates to a rendered browser on
// quality signals.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"aeoaudit/model"
)

// Mode selects which strategy the Fetcher uses.
type Mode string

const (
	ModeHybrid   Mode = "hybrid"
	ModeHTTP     Mode = "http"
	ModeRendered Mode = "rendered"
)

// Options configures a Fetcher.
type Options struct {
	Mode               Mode
	UserAgent          string
	HTTPTimeout        time.Duration
	RenderTimeout      time.Duration
	ChromePath         string
	RenderRequiredHosts []string // host suffixes that always use rendered mode
	MaxRenderRetries   int
}

// DefaultOptions returns spec-aligned defaults (§4.A, §5).
func DefaultOptions() Options {
	return Options{
		Mode:          ModeHybrid,
		UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		HTTPTimeout:   10 * time.Second,
		RenderTimeout: 30 * time.Second,
		MaxRenderRetries: 3,
		RenderRequiredHosts: []string{
			"web.app", "firebaseapp.com", "vercel.app", "netlify.app",
		},
	}
}

// perHostRequestsPerSecond bounds how fast the fetcher issues HTTP requests
// to any single host (§4.A "polite crawl"), independent of the domain
// orchestrator's page-level worker pool, which bounds concurrency but not
// request rate against one host.
const perHostRequestsPerSecond = 2

// Fetcher retrieves a FetchResult whose HTML is rich enough for downstream
// extraction, preferring the cheap path. Modeled as a suspendable function
// with explicit cancellation (§9).
type Fetcher struct {
	opts   Options
	client *http.Client
	log    *zap.Logger
	pool   *BrowserPool

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

func New(opts Options, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		opts: opts,
		client: &http.Client{
			Timeout: opts.HTTPTimeout,
		},
		log:      log,
		pool:     NewBrowserPool(opts),
		limiters: make(map[string]*rate.Limiter),
	}
}

// limiterFor returns the per-host token-bucket limiter for host, creating
// it on first use.
func (f *Fetcher) limiterFor(host string) *rate.Limiter {
	f.limiterMu.Lock()
	defer f.limiterMu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(perHostRequestsPerSecond), perHostRequestsPerSecond)
		f.limiters[host] = lim
	}
	return lim
}

// Fetch executes the mode-selection algorithm of §4.A.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*model.FetchResult, error) {
	switch f.opts.Mode {
	case ModeHTTP:
		return f.fetchHTTP(ctx, target)
	case ModeRendered:
		return f.fetchRendered(ctx, target)
	default:
		return f.fetchHybrid(ctx, target)
	}
}

func (f *Fetcher) fetchHybrid(ctx context.Context, target string) (*model.FetchResult, error) {
	if f.requiresRender(target) {
		return f.fetchRendered(ctx, target)
	}

	httpResult, httpErr := f.fetchHTTP(ctx, target)
	if httpErr == nil {
		if blocked, reason := IsBlockedResponse(httpResult.HTML); blocked {
			f.log.Info("http fetch hit a bot challenge, escalating to rendered",
				zap.String("url", target), zap.String("challenge", reason))
		} else if score := AssessQuality(httpResult.HTML); score.Pass {
			return httpResult, nil
		} else {
			f.log.Info("http fetch failed quality gate, escalating to rendered",
				zap.String("url", target), zap.Int("quality_score", score.Score))
		}
	}

	renderedResult, renderErr := f.fetchRendered(ctx, target)
	if renderErr != nil {
		if httpErr == nil {
			// Render failed: fall back to the HTTP result we already have (§7).
			return httpResult, nil
		}
		return nil, eris.Wrap(renderErr, "fetch: both http and rendered failed")
	}
	if httpErr != nil {
		return renderedResult, nil
	}

	httpScore := AssessQuality(httpResult.HTML)
	renderedScore := AssessQuality(renderedResult.HTML)
	if renderedScore.Score >= httpScore.Score {
		return renderedResult, nil
	}
	return httpResult, nil
}

func (f *Fetcher) requiresRender(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, suffix := range f.opts.RenderRequiredHosts {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}

func (f *Fetcher) fetchHTTP(ctx context.Context, target string) (*model.FetchResult, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: parse target")
	}
	if err := f.limiterFor(parsed.Hostname()).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetch: rate limit wait")
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: build request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return &model.FetchResult{
			URL:         target,
			FetchedAt:   start,
			FetchMethod: model.FetchMethodHTTP,
			Err:         eris.Wrap(err, "fetch: transport"),
		}, nil
	}
	defer resp.Body.Close()

	ttfb := time.Since(start)
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.FetchResult{
			URL:         target,
			StatusCode:  resp.StatusCode,
			FetchedAt:   start,
			FetchMethod: model.FetchMethodHTTP,
			Err:         eris.Wrap(err, "fetch: read body"),
		}, nil
	}

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &model.FetchResult{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
		FetchedAt:  start,
		Performance: model.Performance{
			TTFBMillis: ttfb.Milliseconds(),
		},
		FetchMethod: model.FetchMethodHTTP,
	}, nil
}

func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "aeoaudit-chrome-profile")
}
