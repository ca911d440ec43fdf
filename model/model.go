// Package model defines the closed-record types that flow through the audit
// pipeline: FetchResult -> PageModel -> ContentClassification -> PageAudit,
// and the domain-level DomainAudit and GEOScore.
package model

import "time"

// FetchMethod identifies which strategy produced a FetchResult.
type FetchMethod string

const (
	FetchMethodHTTP     FetchMethod = "http"
	FetchMethodRendered FetchMethod = "rendered"
)

// Performance holds timing signals collected during fetch.
type Performance struct {
	TTFBMillis     int64
	DOMLoadMillis  int64
	PageLoadMillis int64
	FCPMillis      int64
	LCPMillis      int64 // zero means not collected; neither fetch mode sets it
}

// FetchResult is produced by the Adaptive Fetcher and consumed by the Parser.
type FetchResult struct {
	URL         string // final, post-redirect
	StatusCode  int
	HTML        string // possibly empty
	FetchedAt   time.Time
	Performance Performance
	FetchMethod FetchMethod
	Err         error
}

// Heading is one h1-h6 element; Level is 1 through 6.
type Heading struct {
	Level int
	Text  string
	ID    string
}

type Paragraph struct {
	Text        string
	WordCount   int
	HasEmphasis bool
}

type List struct {
	Ordered       bool
	Items         []string
	ParentHeading string
}

type Table struct {
	Headers []string
	Rows    [][]string
	Caption string
}

type Image struct {
	Src        string
	Alt        string
	Width      int
	Height     int
	HasAlt     bool
	Decorative bool
}

// QuestionSource identifies where a detected question came from.
type QuestionSource string

const (
	QuestionSourceHeading QuestionSource = "heading"
	QuestionSourceInline  QuestionSource = "inline"
	QuestionSourceFAQ     QuestionSource = "faq_schema"
)

type Question struct {
	Text   string
	Source QuestionSource
	Answer string
}

// AnswerPatternKind is a tagged variant, not a string-matched classification.
type AnswerPatternKind string

const (
	PatternTLDR       AnswerPatternKind = "tldr"
	PatternDefinition AnswerPatternKind = "definition_box"
	PatternBlockquote AnswerPatternKind = "blockquote"
	PatternCallout    AnswerPatternKind = "callout"
)

type AnswerPattern struct {
	Kind AnswerPatternKind
	Text string
}

type FAQPair struct {
	Question string
	Answer   string
	Valid    bool
}

type FAQSchema struct {
	Pairs      []FAQPair
	ValidCount int
}

// DateSource records which signal produced a resolved date.
type DateSource string

const (
	DateSourceJSONLD      DateSource = "jsonld"
	DateSourceMetaTag     DateSource = "meta"
	DateSourceTimeElement DateSource = "time_element"
	DateSourceUnparseable DateSource = "unparseable"
)

type Dates struct {
	Published       *time.Time
	Modified        *time.Time
	PublishedSource DateSource
	ModifiedSource  DateSource
}

type AuthorSource string

const (
	AuthorSourceJSONLD  AuthorSource = "jsonld"
	AuthorSourceMeta    AuthorSource = "meta"
	AuthorSourceByline  AuthorSource = "byline"
	AuthorSourcePrefix  AuthorSource = "by_prefix"
)

type Author struct {
	Found   bool
	Name    string
	URL     string
	Bio     string
	Sources []AuthorSource
}

// Meta groups the document-level metadata fields.
type Meta struct {
	Description     string
	Canonical       string
	Viewport        string
	OpenGraph       map[string]string
	Twitter         map[string]string
	AEOContentType  string // explicit <meta name="aeo:content-type">, empty if absent
}

// PageModel is the closed record produced by the Extraction Pipeline.
type PageModel struct {
	URL   string
	Title string
	Meta  Meta

	Headings   []Heading
	Paragraphs []Paragraph
	Lists      []List
	Tables     []Table
	Images     []Image
	CodeBlockCount int

	Questions      []Question
	AnswerPatterns []AnswerPattern

	JSONLD           []map[string]any
	MicrodataPresent bool
	RDFaPresent      bool
	FAQ              FAQSchema

	Author Author
	Dates  Dates

	ExternalLinks      []string
	InternalLinksCount int
	WordCount          int
	IsHTTPS            bool
	SemanticTagCount   int

	Performance Performance

	// Keywords holds the TF-IDF top-K unigrams/bigrams extracted from main
	// content; used by Answerability/Citationability scorers and by the
	// GEO topic-coverage component.
	Keywords []string
}

// ContentType is a weighting axis, not a gate.
type ContentType string

const (
	ContentTypeInformational ContentType = "informational"
	ContentTypeExperiential  ContentType = "experiential"
	ContentTypeTransactional ContentType = "transactional"
	ContentTypeNavigational  ContentType = "navigational"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type ContentClassification struct {
	Type           ContentType
	Confidence     Confidence
	SignalsMatched []string
}

// CategoryScore is produced by each scorer: raw in [0,max], sub_scores summing
// to raw within floating-point tolerance.
type CategoryScore struct {
	Raw       float64
	Max       float64
	SubScores map[string]float64
}

func (c CategoryScore) Percentage() float64 {
	if c.Max == 0 {
		return 0
	}
	return c.Raw / c.Max * 100
}

// CategoryName identifies one of the seven category scorers.
type CategoryName string

const (
	CategoryAnswerability   CategoryName = "answerability"
	CategoryStructuredData  CategoryName = "structured_data"
	CategoryAuthority       CategoryName = "authority"
	CategoryContentQuality  CategoryName = "content_quality"
	CategoryCitationability CategoryName = "citationability"
	CategoryTechnical       CategoryName = "technical"
	CategoryAICitation      CategoryName = "ai_citation"
)

// PageAudit is the canonical single-page result.
type PageAudit struct {
	URL                   string
	OverallScore          float64
	Grade                 string
	ContentClassification ContentClassification
	Breakdown             map[CategoryName]CategoryScore
	FetchedAt             time.Time
}

// CategoryAggregate holds a per-category rollup across a domain's pages.
type CategoryAggregate struct {
	MeanScore  float64
	MeanMax    float64
	PageScores []PageCategoryScore // stable-sorted by URL
	BestPage   string
	WorstPage  string
}

type PageCategoryScore struct {
	URL   string
	Score CategoryScore
}

// DomainAudit is produced by the Aggregator (H).
type DomainAudit struct {
	Domain          string
	PagesAudited    int
	PagesSuccessful int
	OverallScore    float64
	Grade           string
	Breakdown       map[CategoryName]CategoryAggregate
	BestPage        string
	WorstPage       string
	GEOScore        *GEOScore
}

// GEOComponentName identifies one of the five brand-level GEO components.
type GEOComponentName string

const (
	GEOBrandFoundation GEOComponentName = "brand_foundation"
	GEOTopicCoverage   GEOComponentName = "topic_coverage"
	GEOConsistency     GEOComponentName = "consistency"
	GEOAIRecall        GEOComponentName = "ai_recall"
	GEOTrust           GEOComponentName = "trust"
)

// GEOScore is the brand-level inclusion-readiness score, independent of
// per-page AEO scores.
type GEOScore struct {
	Overall         float64
	Grade           string
	Components      map[GEOComponentName]CategoryScore
	Summary         string
	Recommendations []string
}

// JobStatus is the JobState lifecycle. No state is ever revisited.
type JobStatus string

const (
	JobQueued      JobStatus = "queued"
	JobDiscovering JobStatus = "discovering"
	JobAuditing    JobStatus = "auditing"
	JobCompleted   JobStatus = "completed"
	JobFailed      JobStatus = "failed"
)

// JobState is the process-wide, single-writer record for one domain audit.
type JobState struct {
	JobID          string
	Status         JobStatus
	Percentage     float64
	PagesAudited   int
	TotalURLs      int
	URLsDiscovered int
	CurrentURL     string
	FailureReason  string
	Result         *DomainAudit
	CreatedAt      time.Time
}

// ProgressEvent is broadcast to subscribers after each completed URL.
type ProgressEvent struct {
	Status         JobStatus
	CurrentStep    string
	Percentage     float64
	PagesAudited   int
	TotalURLs      int
	URLsDiscovered int
	Message        string
	CurrentURL     string
}
