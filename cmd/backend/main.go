package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/foxseedlab/ronpakun/external/config"
	"github.com/foxseedlab/ronpakun/external/discord"
	llmimpl "github.com/foxseedlab/ronpakun/external/llm"
	repositoryimpl "github.com/foxseedlab/ronpakun/external/repository"
	researchimpl "github.com/foxseedlab/ronpakun/external/research"
	"github.com/foxseedlab/ronpakun/external/sessionstore"
	webhookimpl "github.com/foxseedlab/ronpakun/external/webhook"
	"github.com/foxseedlab/ronpakun/internal/bot"
	"github.com/foxseedlab/ronpakun/internal/completion"
	"github.com/foxseedlab/ronpakun/internal/config"
	"github.com/foxseedlab/ronpakun/internal/debate"
	discordpkg "github.com/foxseedlab/ronpakun/internal/discord"
	"github.com/foxseedlab/ronpakun/internal/generator"
	"github.com/samber/do/v2"
)

const discordConnectTimeout = 20 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching discord bot")
	runBot(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	llmimpl.RegisterDI(injector)
	researchimpl.RegisterDI(injector)
	completion.RegisterDI(injector)
	generator.RegisterDI(injector)
	sessionstore.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	discord.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	debate.RegisterDI(injector)
	bot.RegisterDI(injector)

	return injector
}

func runBot(injector do.Injector) {
	dc, err := do.Invoke[discordpkg.Client](injector)
	if err != nil {
		slog.Error("failed to resolve discord client", "error", err)
		os.Exit(1)
	}
	manager, err := do.Invoke[*debate.Manager](injector)
	if err != nil {
		slog.Error("failed to resolve debate manager", "error", err)
		os.Exit(1)
	}
	b, err := do.Invoke[*bot.Bot](injector)
	if err != nil {
		slog.Error("failed to resolve bot", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), discordConnectTimeout)
	defer cancel()

	slog.Info("startup: connecting to discord gateway")
	if err := dc.Connect(ctx); err != nil {
		slog.Error("discord connect failed", "error", err)
		os.Exit(1)
	}
	slog.Info("startup: discord connected")

	botUserID, err := dc.GetBotUserID()
	if err != nil {
		slog.Error("failed to resolve bot user id", "error", err)
		os.Exit(1)
	}
	b.SetBotUserID(botUserID)

	dc.RegisterMessageCreateHandler(b.HandleMessageCreate)
	slog.Info("discord handlers registered", "bot_user_id", botUserID)
	defer func() {
		if err := dc.Close(); err != nil {
			slog.Error("discord close failed", "error", err)
		}
	}()

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go manager.RunJanitor(janitorCtx)

	done := make(chan struct{})
	go func() {
		slog.Info("startup: entering discord run loop")
		if err := dc.Run(); err != nil {
			slog.Error("discord run failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
	case <-done:
	}
}
