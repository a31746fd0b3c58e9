package generator

import (
	"github.com/foxseedlab/ronpakun/internal/completion"
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (Generator, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[*completion.Client](i)
		return New(client, cfg.MessageCharLimit), nil
	})
}
