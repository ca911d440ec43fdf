// Package audit wires the Fetcher, Extractors, Content Classifier, and
// Score Calculator into the single-page operation, Pipeline.Page. Domain-wide
// runs live in the domainaudit package, which calls Pipeline.Page for each
// discovered URL. Each phase is an injected collaborator so the pipeline
// stays testable without a live network.
package audit

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"aeoaudit/classify"
	"aeoaudit/extract"
	"aeoaudit/model"
	"aeoaudit/score"
)

// Fetcher is the narrow capability Pipeline needs from fetch.Fetcher,
// named so tests can substitute a stub without a live network.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*model.FetchResult, error)
}

// Pipeline is the single-page audit: fetch -> extract -> classify -> score.
type Pipeline struct {
	fetcher Fetcher
	calc    *score.Calculator
	log     *zap.Logger
}

// New builds a Pipeline. calc should be built with score.NewCalculator
// over the full set of category scorers (§4.E).
func New(fetcher Fetcher, calc *score.Calculator, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{fetcher: fetcher, calc: calc, log: log}
}

// Result pairs the extracted PageModel with its PageAudit; the domain
// orchestrator and the GEO scorer both need the PageModel alongside the
// audit, so Page returns both rather than discarding the model.
type Result struct {
	Model *model.PageModel
	Audit model.PageAudit
}

// Page runs the full single-page pipeline for target (§6
// "audit.Page(ctx, url) (*model.PageAudit, error)"; Result additionally
// carries the PageModel so callers building a domain audit or GEO score
// don't re-fetch).
func (p *Pipeline) Page(ctx context.Context, target string) (*Result, error) {
	fr, err := p.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, eris.Wrapf(err, "audit: fetch %s", target)
	}

	pm, err := extract.Run(fr, p.log)
	if err != nil {
		return nil, eris.Wrapf(err, "audit: extract %s", target)
	}

	cc := classify.Classify(pm)

	fetchedAt := fr.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = nowFunc()
	}
	pageAudit := p.calc.Calculate(pm, cc, fetchedAt)

	p.log.Debug("audit: page scored",
		zap.String("url", target),
		zap.Float64("overall", pageAudit.OverallScore),
		zap.String("grade", pageAudit.Grade),
	)

	return &Result{Model: pm, Audit: pageAudit}, nil
}

// nowFunc is indirected for test determinism.
var nowFunc = time.Now
