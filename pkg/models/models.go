package models

// Columns is the fixed output schema, in emission order.
var Columns = []string{"언론사", "제목", "날짜", "카테고리", "기자명", "본문"}

// Defaults applied when a field cannot be extracted.
const (
	DefaultCategory = "미분류"
	DefaultReporter = "미상"
)

// Candidate is a pointer to one article produced by a listing source,
// prior to extraction. Preview fields are hints only and may be empty.
type Candidate struct {
	URL      string
	Title    string
	Date     string
	Reporter string
	Category string
	Summary  string
}

// Record is the normalized six-field output row.
type Record struct {
	Outlet   string
	Title    string
	Date     string
	Category string
	Reporter string
	Body     string
}

// Fields returns the record as an ordered CSV row matching Columns.
func (r Record) Fields() []string {
	return []string{r.Outlet, r.Title, r.Date, r.Category, r.Reporter, r.Body}
}

// ReporterPolicy controls how the reporter field is resolved per source.
type ReporterPolicy string

const (
	// ReporterExtracted runs the full byline cascade (RSS author, DOM
	// nodes, body-tail regex scan) and falls back to DefaultReporter.
	ReporterExtracted ReporterPolicy = "extracted"

	// ReporterOutletConstant always emits the outlet-wide constant,
	// regardless of byline. Deliberate policy of some sources.
	ReporterOutletConstant ReporterPolicy = "outlet_constant"

	// ReporterRSSOnly accepts the feed author field only; no DOM or
	// body scanning.
	ReporterRSSOnly ReporterPolicy = "rss_only"
)

// FetchMode selects the retrieval path for a page.
type FetchMode string

const (
	ModeRaw      FetchMode = "raw"
	ModeRendered FetchMode = "rendered"
)
