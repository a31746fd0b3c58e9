package llm

import (
	"github.com/foxseedlab/ronpakun/internal/config"
	llmpkg "github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (llmpkg.Provider, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewOpenAIClient(c.LLMBaseURL, c.LLMAPIKey, c.LLMModel), nil
	})
}
