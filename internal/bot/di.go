package bot

import (
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/debate"
	"github.com/foxseedlab/ronpakun/internal/discord"
	"github.com/foxseedlab/ronpakun/internal/repository"
	"github.com/foxseedlab/ronpakun/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		dc := do.MustInvoke[discord.Client](i)
		manager := do.MustInvoke[*debate.Manager](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return New(cfg, dc, manager, repo, wh), nil
	})
}
