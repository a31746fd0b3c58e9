package completion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/research"
)

const (
	// NoFallaciesVerdict is the sentinel the analysis prompt demands when a
	// message contains no logical fallacy.
	NoFallaciesVerdict = "NO_FALLACIES"

	// FallbackText is returned when every completion attempt comes back empty.
	FallbackText = "I seem to have lost my train of thought for a moment, but my position stands. Care to actually counter my last point?"

	maxEmptyRetries = 2
	maxSources      = 3

	steeringInstruction = "Use the tool results above to strengthen your argument. Answer concisely in plain text and do not request more tools."

	analysisSystemPrompt = "You are a strict referee of informal logic. Examine the user's message for logical fallacies " +
		"(ad hominem, strawman, false dilemma, slippery slope, appeal to authority, whataboutism, and similar). " +
		"If you find any, reply with only the name of the most prominent fallacy. " +
		"If there are none, reply with exactly " + NoFallaciesVerdict + "."

	condenseSystemPrompt = "Rewrite the user's message so it fits within %d characters. Keep the argumentative tone, " +
		"the key claims and any cited facts. Reply with the rewritten text only."
)

// ToolRunner executes a single research tool call.
type ToolRunner interface {
	Execute(ctx context.Context, toolName, argumentsJSON string) research.Result
}

// Result is a finished completion with the sources gathered while producing it.
type Result struct {
	Text    string
	Sources []research.Source
}

type Options struct {
	Temperature *float64
}

// Client wraps the completion provider with the tool round-trip, the
// empty-response retry loop and the analysis/condensation helpers.
type Client struct {
	provider   llm.Provider
	tools      ToolRunner
	toolRounds int
}

func NewClient(provider llm.Provider, tools ToolRunner, toolRounds int) *Client {
	return &Client{
		provider:   provider,
		tools:      tools,
		toolRounds: toolRounds,
	}
}

// Complete runs the full exchange: an initial call with the tool catalog, a
// bounded number of tool round-trips, and up to two full retries when the
// model returns empty text. It never returns an error; exhausted attempts
// yield FallbackText with no sources.
func (c *Client) Complete(ctx context.Context, messages []llm.Message, opts Options) Result {
	var sources []research.Source
	for attempt := 0; attempt <= maxEmptyRetries; attempt++ {
		text, attemptSources := c.completeOnce(ctx, messages, opts)
		// Research from a failed attempt is carried into the next one.
		sources = append(sources, attemptSources...)
		if text != "" {
			return Result{Text: text, Sources: dedupeSources(sources)}
		}
		slog.Warn("completion attempt returned empty text", "attempt", attempt+1)
	}
	return Result{Text: FallbackText}
}

func (c *Client) completeOnce(ctx context.Context, messages []llm.Message, opts Options) (string, []research.Source) {
	msgs := make([]llm.Message, len(messages))
	copy(msgs, messages)

	var sources []research.Source
	roundsLeft := c.toolRounds
	for {
		resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
			Messages:    msgs,
			Tools:       research.Definitions(),
			Temperature: opts.Temperature,
		})
		if err != nil {
			slog.Error("completion call failed", "error", err)
			return "", sources
		}

		if len(resp.ToolCalls) == 0 {
			return strings.TrimSpace(resp.Content), sources
		}
		if roundsLeft <= 0 {
			// Tool calls past the round budget are dropped, not executed.
			slog.Debug("dropping tool calls past round budget", "count", len(resp.ToolCalls))
			return strings.TrimSpace(resp.Content), sources
		}
		roundsLeft--

		msgs = append(msgs, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result := c.tools.Execute(ctx, call.Name, call.Arguments)
			sources = append(sources, result.Sources...)
			msgs = append(msgs, toolResultMessage(call, result))
		}
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: steeringInstruction})
	}
}

// Analyze classifies text for logical fallacies in a single non-tool call.
// ok is false when the verdict is unavailable (transport failure or an empty
// reply); callers treat that as "nothing detected".
func (c *Client) Analyze(ctx context.Context, text string) (string, bool) {
	temp := 0.1
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: analysisSystemPrompt},
			{Role: llm.RoleUser, Content: text},
		},
		Temperature: &temp,
	})
	if err != nil {
		slog.Warn("fallacy analysis call failed", "error", err)
		return "", false
	}
	verdict := strings.TrimSpace(resp.Content)
	if verdict == "" {
		return "", false
	}
	return verdict, true
}

// IsCleanVerdict reports whether an analysis verdict means "no fallacies".
func IsCleanVerdict(verdict string) bool {
	return strings.Contains(strings.ToUpper(verdict), NoFallaciesVerdict)
}

// Condense shrinks text to at most maxLength characters. It is total: any
// failure falls back to hard truncation.
func (c *Client) Condense(ctx context.Context, text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fmt.Sprintf(condenseSystemPrompt, maxLength)},
			{Role: llm.RoleUser, Content: text},
		},
	})
	if err != nil {
		slog.Warn("condense call failed; hard-truncating", "error", err, "max_length", maxLength)
		return hardTruncate(text, maxLength)
	}
	condensed := strings.TrimSpace(resp.Content)
	if condensed == "" {
		return hardTruncate(text, maxLength)
	}
	if len(condensed) > maxLength {
		return hardTruncate(condensed, maxLength)
	}
	return condensed
}

func hardTruncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return text[:cutAtRuneStart(text, maxLength)]
	}
	return text[:cutAtRuneStart(text, maxLength-3)] + "..."
}

// cutAtRuneStart moves a byte offset back to the nearest rune start so the
// truncated string stays valid UTF-8.
func cutAtRuneStart(s string, idx int) int {
	for idx > 0 && !utf8.RuneStart(s[idx]) {
		idx--
	}
	return idx
}

func toolResultMessage(call llm.ToolCall, result research.Result) llm.Message {
	content := result.Payload
	if result.IsError() {
		content = fmt.Sprintf(`{"error":%q}`, result.ErrorMessage)
	}
	return llm.Message{
		Role:       llm.RoleTool,
		Content:    content,
		ToolCallID: call.ID,
	}
}

func dedupeSources(sources []research.Source) []research.Source {
	seen := make(map[string]struct{}, len(sources))
	out := make([]research.Source, 0, maxSources)
	for _, s := range sources {
		if s.URL == "" {
			continue
		}
		if _, dup := seen[s.URL]; dup {
			continue
		}
		seen[s.URL] = struct{}{}
		out = append(out, s)
		if len(out) == maxSources {
			break
		}
	}
	return out
}
