package debate

import (
	"github.com/foxseedlab/ronpakun/internal/completion"
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/generator"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		store := do.MustInvoke[Store](i)
		gen := do.MustInvoke[generator.Generator](i)
		client := do.MustInvoke[*completion.Client](i)
		return NewManager(cfg, store, gen, client), nil
	})
}
