// Package report defines the narrow capability interfaces the core calls
// into for PDF rendering and recommendation text generation (§6, §9): both
// are external collaborators the core never constructs directly, only
// consumes behind an interface with a null-object default.
package report

import (
	"context"
	"strconv"

	"aeoaudit/model"
)

// AuditType distinguishes a single-page PDF report from a domain report.
type AuditType string

const (
	AuditTypePage   AuditType = "page"
	AuditTypeDomain AuditType = "domain"
)

// Request is the PDF generation capability's input (§6 "POST /audit/pdf").
type Request struct {
	Type      AuditType
	PageAudit *model.PageAudit
	Domain    *model.DomainAudit
	Detailed  bool
}

// GenerationError wraps a PDF generation failure with the reason (§7: PDF
// generation failure is reported to the caller and never invalidates the
// audit result that produced the request).
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Reason == "" {
		return "report: pdf generation failed"
	}
	return "report: pdf generation failed: " + e.Reason
}

// Generator renders an audit result to PDF bytes. The core never
// constructs a concrete Generator; an operator wires one in, or the core
// falls back to NullGenerator.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

// NullGenerator is the default the core constructs when no PDF renderer is
// configured (§9 "null-object defaults when absent").
type NullGenerator struct{}

func (NullGenerator) Generate(context.Context, Request) ([]byte, error) {
	return nil, &GenerationError{Reason: "no PDF generator configured"}
}

// RecommendationTemplate renders a category's sub-score shortfall into
// operator-facing prose. The core never constructs a concrete
// implementation; it is supplied by the thin API/UI layer (§1 Non-goals:
// "the recommendation template library").
type RecommendationTemplate interface {
	Render(category model.CategoryName, score model.CategoryScore) string
}

// NullRecommendationTemplate is the default the core falls back on when no
// template library is configured: a minimal, deterministic rendering good
// enough for headless/CLI use (§9 null-object default).
type NullRecommendationTemplate struct{}

func (NullRecommendationTemplate) Render(category model.CategoryName, score model.CategoryScore) string {
	if score.Max == 0 {
		return string(category) + ": not scored"
	}
	pct := strconv.Itoa(int(score.Percentage() + 0.5))
	switch {
	case score.Percentage() >= 90:
		return string(category) + " is strong; no action needed"
	case score.Percentage() >= 60:
		return string(category) + " has room to improve (" + pct + "% of max)"
	default:
		return string(category) + " needs attention (" + pct + "% of max)"
	}
}
