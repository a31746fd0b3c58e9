package research

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxseedlab/ronpakun/internal/llm"
)

const (
	maxSearchHits     = 5
	maxSnippetLength  = 300
	maxPageContentLen = 4000
	maxExtractLength  = 2000
)

// Executor runs research tools on behalf of the completion loop and
// normalizes every outcome, including failures, into a Result.
type Executor struct {
	searcher     Searcher
	fetcher      Fetcher
	encyclopedia Encyclopedia
}

func NewExecutor(searcher Searcher, fetcher Fetcher, encyclopedia Encyclopedia) *Executor {
	return &Executor{
		searcher:     searcher,
		fetcher:      fetcher,
		encyclopedia: encyclopedia,
	}
}

// Definitions returns the fixed tool catalog offered to the model.
func Definitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        ToolNameSearch,
			Description: "Search the web for current information. Returns ranked results with title, url and snippet.",
			InputSchema: `{"type":"object","properties":{"query":{"type":"string","description":"The search query."}},"required":["query"]}`,
		},
		{
			Name:        ToolNameFetch,
			Description: "Fetch a web page and return its title and readable text content.",
			InputSchema: `{"type":"object","properties":{"url":{"type":"string","description":"The absolute URL to fetch."}},"required":["url"]}`,
		},
		{
			Name:        ToolNameLookup,
			Description: "Look up an encyclopedia article summary for a topic.",
			InputSchema: `{"type":"object","properties":{"query":{"type":"string","description":"The article topic."}},"required":["query"]}`,
		},
	}
}

type searchArgs struct {
	Query string `json:"query"`
}

type fetchArgs struct {
	URL string `json:"url"`
}

func (e *Executor) Execute(ctx context.Context, toolName, argumentsJSON string) Result {
	kind := ParseKind(toolName)
	switch kind {
	case KindSearch:
		return e.executeSearch(ctx, argumentsJSON)
	case KindFetch:
		return e.executeFetch(ctx, argumentsJSON)
	case KindLookup:
		return e.executeLookup(ctx, argumentsJSON)
	default:
		return errorResult(toolName, fmt.Sprintf("unknown tool %q", toolName))
	}
}

func (e *Executor) executeSearch(ctx context.Context, argumentsJSON string) Result {
	var args searchArgs
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return errorResult(ToolNameSearch, "malformed tool arguments: "+err.Error())
	}
	if strings.TrimSpace(args.Query) == "" {
		return errorResult(ToolNameSearch, "query must not be empty")
	}

	hits, err := e.searcher.Search(ctx, args.Query)
	if err != nil {
		slog.Warn("web search failed", "query", args.Query, "error", err)
		return errorResult(ToolNameSearch, "web search failed: "+err.Error())
	}
	if len(hits) > maxSearchHits {
		hits = hits[:maxSearchHits]
	}
	sources := make([]Source, 0, len(hits))
	for i := range hits {
		hits[i].Snippet = truncate(hits[i].Snippet, maxSnippetLength)
		sources = append(sources, Source{Title: hits[i].Title, URL: hits[i].URL})
	}
	return payloadResult(ToolNameSearch, hits, sources)
}

func (e *Executor) executeFetch(ctx context.Context, argumentsJSON string) Result {
	var args fetchArgs
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return errorResult(ToolNameFetch, "malformed tool arguments: "+err.Error())
	}
	if strings.TrimSpace(args.URL) == "" {
		return errorResult(ToolNameFetch, "url must not be empty")
	}

	page, err := e.fetcher.Fetch(ctx, args.URL)
	if err != nil {
		slog.Warn("page fetch failed", "url", args.URL, "error", err)
		return errorResult(ToolNameFetch, "page fetch failed: "+err.Error())
	}
	page.Content = truncate(page.Content, maxPageContentLen)
	title := page.Title
	if title == "" {
		title = args.URL
	}
	return payloadResult(ToolNameFetch, page, []Source{{Title: title, URL: args.URL}})
}

func (e *Executor) executeLookup(ctx context.Context, argumentsJSON string) Result {
	var args searchArgs
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return errorResult(ToolNameLookup, "malformed tool arguments: "+err.Error())
	}
	if strings.TrimSpace(args.Query) == "" {
		return errorResult(ToolNameLookup, "query must not be empty")
	}

	article, err := e.encyclopedia.Lookup(ctx, args.Query)
	if err != nil {
		slog.Warn("encyclopedia lookup failed", "query", args.Query, "error", err)
		return errorResult(ToolNameLookup, "encyclopedia lookup failed: "+err.Error())
	}
	if article == nil {
		return errorResult(ToolNameLookup, fmt.Sprintf("no encyclopedia article found for %q", args.Query))
	}
	article.Extract = truncate(article.Extract, maxExtractLength)
	return payloadResult(ToolNameLookup, article, []Source{{Title: article.Title, URL: article.URL}})
}

func payloadResult(toolName string, payload any, sources []Source) Result {
	b, err := json.Marshal(payload)
	if err != nil {
		return errorResult(toolName, "failed to encode tool payload: "+err.Error())
	}
	return Result{ToolName: toolName, Payload: string(b), Sources: sources}
}

func errorResult(toolName, message string) Result {
	return Result{ToolName: toolName, ErrorMessage: message}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
