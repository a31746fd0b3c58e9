package research

import "context"

const (
	ToolNameSearch = "web_search"
	ToolNameFetch  = "web_fetch"
	ToolNameLookup = "encyclopedia_lookup"
)

// Kind is the closed set of research tools the bot can run.
type Kind int

const (
	KindUnknown Kind = iota
	KindSearch
	KindFetch
	KindLookup
)

func ParseKind(name string) Kind {
	switch name {
	case ToolNameSearch:
		return KindSearch
	case ToolNameFetch:
		return KindFetch
	case ToolNameLookup:
		return KindLookup
	default:
		return KindUnknown
	}
}

// Source is a citable origin of a tool result.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Result is the normalized outcome of one tool invocation. Failures are
// carried as data in ErrorMessage so a multi-tool round never aborts.
type Result struct {
	ToolName     string
	Payload      string
	ErrorMessage string
	Sources      []Source
}

func (r Result) IsError() bool {
	return r.ErrorMessage != ""
}

type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Article struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
}

// Searcher returns ranked web results for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// Fetcher downloads a single web page as plain text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Encyclopedia resolves a query to an article summary.
// A nil article with a nil error means the article was not found.
type Encyclopedia interface {
	Lookup(ctx context.Context, query string) (*Article, error)
}
