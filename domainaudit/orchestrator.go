// Package domainaudit implements the Domain Orchestrator (§4.G): URL
// discovery, a bounded-concurrency worker pool auditing each discovered
// page, progress publication through jobstore, and per-category plus GEO
// aggregation. The worker pool is a fixed set of goroutines reading a
// channel job queue and joined with a sync.WaitGroup, so total concurrency
// stays capped regardless of how many pages discovery turns up.
package domainaudit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"aeoaudit/audit"
	"aeoaudit/geoscore"
	"aeoaudit/jobstore"
	"aeoaudit/model"
)

const (
	domainHardCeiling  = 1000
	defaultConcurrency = 3
	concurrencyHardCap = 10
	perPageTimeout     = 60 * time.Second
	stallTimeout       = 5 * time.Minute
)

// Options configures one domain audit run (§6 domain.* config keys).
type Options struct {
	MaxPages          int
	Concurrency       int
	IncludeSubdomains bool
	UserAgent         string
}

// Normalize clamps Options to the bounds §6/§8 require:
// max_pages 0 means the hard ceiling, not unbounded; concurrency is
// clamped to [1,10].
func (o Options) Normalize() Options {
	if o.MaxPages <= 0 || o.MaxPages > domainHardCeiling {
		o.MaxPages = domainHardCeiling
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Concurrency > concurrencyHardCap {
		o.Concurrency = concurrencyHardCap
	}
	return o
}

// Orchestrator runs domain-wide audits: discovery, bounded-concurrency
// per-page auditing, aggregation, and GEO scoring, publishing progress to
// a jobstore.Store as it goes.
type Orchestrator struct {
	pipeline   *audit.Pipeline
	discoverer *Discoverer
	store      *jobstore.Store
	log        *zap.Logger
}

func NewOrchestrator(pipeline *audit.Pipeline, discoverer *Discoverer, store *jobstore.Store, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{pipeline: pipeline, discoverer: discoverer, store: store, log: log}
}

// Start creates a queued job and launches the audit in the background,
// returning the job id synchronously (§4.G "creates a JobState queued,
// returns a job-id synchronously, and runs the rest asynchronously").
func (o *Orchestrator) Start(ctx context.Context, domainURL string, opts Options) string {
	jobID := o.store.Create()
	go o.run(ctx, jobID, domainURL, opts.Normalize())
	return jobID
}

func (o *Orchestrator) run(ctx context.Context, jobID, domainURL string, opts Options) {
	log := o.log.With(zap.String("job_id", jobID), zap.String("domain", domainURL))

	o.store.Transition(jobID, model.JobDiscovering, nil)

	urls, err := o.discoverer.Discover(ctx, domainURL, opts.MaxPages)
	if err != nil {
		log.Warn("discovery failed", zap.Error(err))
		o.store.Fail(jobID, "discovery failed: "+err.Error())
		return
	}
	if len(urls) == 0 {
		o.store.Fail(jobID, "no URLs discovered")
		return
	}

	o.store.Transition(jobID, model.JobDiscovering, func(st *model.JobState) {
		st.URLsDiscovered = len(urls)
		st.TotalURLs = len(urls)
		st.Percentage = 10
	})

	o.store.Transition(jobID, model.JobAuditing, nil)

	results := o.auditAll(ctx, jobID, domainURL, urls, opts)
	if st, ok := o.store.Get(jobID); ok && st.Status == model.JobFailed {
		// A stalled pool has already failed the job; partial results are
		// discarded rather than moving it on to completed.
		return
	}
	if len(results) == 0 {
		o.store.Fail(jobID, "no pages were successfully audited")
		return
	}

	domainAudit := Aggregate(domainURL, urls, results)

	brandName := geoscore.BrandNameFromDomain(domainURL)
	geoInputs := make([]geoscore.PageInput, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			continue
		}
		geoInputs = append(geoInputs, geoscore.PageInput{Model: r.model, Audit: r.audit})
	}
	domainAudit.GEOScore = geoscore.Compute(domainURL, brandName, geoInputs)

	o.store.SetResult(jobID, &domainAudit)
}

type pageResult struct {
	url   string
	model *model.PageModel
	audit model.PageAudit
	err   error
}

// auditAll runs the bounded-concurrency worker pool over urls, publishing a
// progress event after each completed URL (§4.G "Progress").
func (o *Orchestrator) auditAll(ctx context.Context, jobID, domainURL string, urls []string, opts Options) []pageResult {
	jobs := make(chan string)
	out := make(chan pageResult, len(urls))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for u := range jobs {
			out <- o.auditOne(ctx, u)
		}
	}

	n := opts.Concurrency
	if n > len(urls) {
		n = len(urls)
	}
	if n < 1 {
		n = 1
	}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go worker()
	}

	go func() {
		for _, u := range urls {
			select {
			case jobs <- u:
			case <-ctx.Done():
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]pageResult, 0, len(urls))
	completed := 0
	lastProgress := time.Now()
	stallTimer := time.NewTimer(stallTimeout)
	defer stallTimer.Stop()

	for {
		select {
		case r, ok := <-out:
			if !ok {
				return results
			}
			completed++
			lastProgress = time.Now()
			if !stallTimer.Stop() {
				select {
				case <-stallTimer.C:
				default:
				}
			}
			stallTimer.Reset(stallTimeout)

			if r.err != nil {
				o.log.Debug("page audit failed", zap.String("url", r.url), zap.Error(r.err))
			} else {
				results = append(results, r)
			}

			pct := 10 + 90*float64(completed)/float64(len(urls))
			o.store.Transition(jobID, model.JobAuditing, func(st *model.JobState) {
				st.PagesAudited = completed
				st.CurrentURL = r.url
				st.Percentage = pct
			})

		case <-stallTimer.C:
			o.log.Warn("worker pool stalled", zap.Time("last_progress", lastProgress))
			o.store.Fail(jobID, "worker pool stalled: no progress for 5 minutes")
			return results

		case <-ctx.Done():
			return results
		}
	}
}

func (o *Orchestrator) auditOne(ctx context.Context, target string) pageResult {
	pageCtx, cancel := context.WithTimeout(ctx, perPageTimeout)
	defer cancel()

	result, err := o.pipeline.Page(pageCtx, target)
	if err != nil {
		return pageResult{url: target, err: err}
	}
	return pageResult{url: target, model: result.Model, audit: result.Audit}
}
