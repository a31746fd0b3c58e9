package completion

import (
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/llm"
	"github.com/foxseedlab/ronpakun/internal/research"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		provider := do.MustInvoke[llm.Provider](i)
		executor := do.MustInvoke[*research.Executor](i)
		return NewClient(provider, executor, cfg.LLMToolRounds), nil
	})
}
