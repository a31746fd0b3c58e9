package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foxseedlab/ronpakun/internal/completion"
	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/research"
)

// VictoryMarker is the token the model appends when it claims the debate.
const VictoryMarker = "[VICTORY]"

// Generator produces finished debate turns ready for delivery.
type Generator interface {
	GenerateOpening(ctx context.Context, subject string) string
	GenerateTurn(ctx context.Context, transcript []llm.Message, subject string, inactivityStreak int) string
}

// CompletionClient is the slice of the completion client the generator uses.
type CompletionClient interface {
	Complete(ctx context.Context, messages []llm.Message, opts completion.Options) completion.Result
	Condense(ctx context.Context, text string, maxLength int) string
}

type generator struct {
	client    CompletionClient
	charLimit int
	now       func() time.Time
}

func New(client CompletionClient, charLimit int) Generator {
	return &generator{
		client:    client,
		charLimit: charLimit,
		now:       time.Now,
	}
}

func (g *generator) GenerateOpening(ctx context.Context, subject string) string {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: g.systemPrompt(subject, 0)},
		{Role: llm.RoleUser, Content: openingInstruction},
	}
	result := g.client.Complete(ctx, messages, completion.Options{})
	return g.finish(ctx, result)
}

func (g *generator) GenerateTurn(ctx context.Context, transcript []llm.Message, subject string, inactivityStreak int) string {
	messages := make([]llm.Message, 0, len(transcript)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: g.systemPrompt(subject, inactivityStreak)})
	messages = append(messages, transcript...)
	result := g.client.Complete(ctx, messages, completion.Options{})
	return g.finish(ctx, result)
}

// finish condenses to the display budget and then appends the citation line,
// so citations are never truncated away.
func (g *generator) finish(ctx context.Context, result completion.Result) string {
	text := g.client.Condense(ctx, result.Text, g.charLimit)
	if line := citationLine(result.Sources); line != "" {
		text += "\n" + line
	}
	return text
}

func (g *generator) systemPrompt(subject string, inactivityStreak int) string {
	var b strings.Builder
	b.WriteString(personaPrompt)
	fmt.Fprintf(&b, "\n\nThe current time is %s.", g.now().UTC().Format(time.RFC1123))
	fmt.Fprintf(&b, "\nThe debate subject is: %s", subject)
	if inactivityStreak >= disengagedStreakHint {
		b.WriteString("\n" + disengagedNotice)
	}
	return b.String()
}

func citationLine(sources []research.Source) string {
	if len(sources) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URL
		}
		parts = append(parts, fmt.Sprintf("[%s](%s)", title, s.URL))
	}
	return "-# Sources: " + strings.Join(parts, " · ")
}
