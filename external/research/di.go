package research

import (
	"github.com/foxseedlab/ronpakun/internal/config"
	researchpkg "github.com/foxseedlab/ronpakun/internal/research"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*researchpkg.Executor, error) {
		c := do.MustInvoke[*config.Config](i)
		return researchpkg.NewExecutor(
			NewBraveSearcher(c.SearchAPIURL, c.SearchAPIKey),
			NewPageFetcher(),
			NewWikipediaClient(),
		), nil
	})
}
