package display

// Payload is the assembled display response. Each module key is present iff
// the corresponding settings flag is enabled; disabled modules are absent
// rather than null.
type Payload struct {
	Location    *string       `json:"location,omitempty"`
	Calendar    *CalendarCard `json:"calendar,omitempty"`
	Recipe      *ContentCard  `json:"recipe,omitempty"`
	Inspiration *ContentCard  `json:"inspiration,omitempty"`
	Tasks       *TasksCard    `json:"tasks,omitempty"`
	DailyQuote  *QuoteCard    `json:"daily_quote,omitempty"`
}

// CalendarCard lists the day's schedule.
type CalendarCard struct {
	Title  string          `json:"title"`
	Events []CalendarEvent `json:"events"`
}

type CalendarEvent struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

// ContentCard carries an AI-curated item (recipe or inspiration) or its
// fixed fallback.
type ContentCard struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Keyword []string `json:"keyword"`
	Source  string   `json:"source"`
}

// TasksCard lists upcoming tasks.
type TasksCard struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Keyword []string `json:"keyword"`
}

// QuoteCard carries the daily quote.
type QuoteCard struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Source string `json:"source"`
}

// Source tags distinguishing how a card was produced.
const (
	SourceCurated         = "AI-generated/Clipping"
	SourceDefaultFallback = "Default Fallback"
	SourceQuoteFallback   = "Fallback"
)
