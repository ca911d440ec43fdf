package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"aeoaudit/model"
)

// stealthScript masks common automation-detection signals so rendered
// fetches behave like a real browser.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = { runtime: {}, loadTimes: function() {}, csi: function() {}, app: {} };
Object.defineProperty(navigator, 'plugins', {
    get: () => [
        { name: 'Chrome PDF Plugin', filename: 'internal-pdf-viewer', description: 'Portable Document Format' },
        { name: 'Chrome PDF Viewer', filename: 'mhjfbmdgcfjbbpaeojofohoefgiehjai', description: '' },
        { name: 'Native Client', filename: 'internal-nacl-plugin', description: '' },
    ],
});
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
    parameters.name === 'notifications' ?
        Promise.resolve({ state: Notification.permission }) :
        originalQuery(parameters)
);
const getParameter = WebGLRenderingContext.prototype.getParameter;
WebGLRenderingContext.prototype.getParameter = function(parameter) {
    if (parameter === 37445) { return 'Intel Inc.'; }
    if (parameter === 37446) { return 'Intel Iris OpenGL Engine'; }
    return getParameter.apply(this, arguments);
};
const originalFunction = Function.prototype.toString;
Function.prototype.toString = function() {
    if (this === window.navigator.permissions.query) {
        return 'function query() { [native code] }';
    }
    return originalFunction.apply(this, arguments);
};
`

// BrowserPool hands out exclusive, scoped allocator contexts. §9: "a worker
// borrows a browser page, guarantees release on every exit path."
type BrowserPool struct {
	opts Options
	sem  chan struct{}
}

// NewBrowserPool builds a pool with a single slot; render fetches are
// serialized per Fetcher, matching one allocator per fetch in this module
// (a process-wide pooled allocator is left to the orchestrator's worker
// pool, which bounds concurrency at the page level instead).
func NewBrowserPool(opts Options) *BrowserPool {
	return &BrowserPool{opts: opts, sem: make(chan struct{}, 1)}
}

// Acquire blocks until a slot is free and returns a release function that
// must be called exactly once, on every exit path.
func (p *BrowserPool) Acquire(ctx context.Context) (func(), error) {
	select {
	case p.sem <- struct{}{}:
		return func() { <-p.sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Fetcher) fetchRendered(ctx context.Context, target string) (*model.FetchResult, error) {
	release, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: acquire browser")
	}
	defer release()

	maxRetries := f.opts.MaxRenderRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := f.renderOnce(ctx, target)
		if err != nil {
			lastErr = err
			backoff := time.Duration(200*(1<<attempt)) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}
		return result, nil
	}
	return nil, eris.Wrapf(lastErr, "fetch: rendered fetch failed after %d attempts", maxRetries)
}

func (f *Fetcher) renderOnce(ctx context.Context, target string) (*model.FetchResult, error) {
	start := time.Now()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("password-store", "basic"),
		chromedp.Flag("use-mock-keychain", true),
		chromedp.UserAgent(f.opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserDataDir(userDataDir()),
		chromedp.Flag("headless", "new"),
	}
	if f.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(f.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	timeout := f.opts.RenderTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	runCtx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	runCtx, cancel = chromedp.NewContext(runCtx)
	defer cancel()

	var html, finalURL string
	err := chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Network-idle-equivalent settle: a fixed quiet window, then an
		// additional wait for late-binding content per §4.A.
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var title string
			if err := chromedp.Title(&title).Do(ctx); err != nil {
				return nil
			}
			if title == "Just a moment..." {
				return chromedp.Sleep(5 * time.Second).Do(ctx)
			}
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var bodyHTML string
			if err := chromedp.OuterHTML("body", &bodyHTML, chromedp.ByQuery).Do(ctx); err != nil {
				return nil
			}
			if strings.Contains(bodyHTML, "captcha-delivery.com") {
				chromedp.Sleep(5 * time.Second).Do(ctx)
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: render navigate")
	}

	return &model.FetchResult{
		URL:        finalURL,
		StatusCode: 200,
		HTML:       html,
		FetchedAt:  start,
		Performance: model.Performance{
			PageLoadMillis: time.Since(start).Milliseconds(),
		},
		FetchMethod: model.FetchMethodRendered,
	}, nil
}

// IsBlockedResponse reports whether html shows a known bot-challenge
// signature (Cloudflare, DataDome, PerimeterX, Akamai, Google/reCAPTCHA).
func IsBlockedResponse(html string) (bool, string) {
	switch {
	case strings.Contains(html, "unusual traffic from your computer"),
		strings.Contains(html, "detected unusual traffic"):
		return true, "google_captcha"
	case strings.Contains(html, "recaptcha") && len(html) < 10000:
		return true, "recaptcha_challenge"
	case strings.Contains(html, "Just a moment..."),
		strings.Contains(html, "Checking your browser"),
		strings.Contains(html, "cf-browser-verification"):
		return true, "cloudflare_challenge"
	case strings.Contains(html, "captcha-delivery.com"), strings.Contains(html, "DataDome"):
		return true, "datadome_bot_protection"
	case strings.Contains(html, "perimeterx"), strings.Contains(html, "px-captcha"):
		return true, "perimeterx_bot_protection"
	case strings.Contains(html, "akam/") && len(html) < 5000:
		return true, "akamai_bot_protection"
	default:
		return false, ""
	}
}
