package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/igpeek/igpeek/internal/bot"
	"github.com/igpeek/igpeek/internal/channel"
	"github.com/igpeek/igpeek/internal/channel/adapters/discord"
	"github.com/igpeek/igpeek/internal/channel/adapters/telegram"
	"github.com/igpeek/igpeek/internal/config"
	"github.com/igpeek/igpeek/internal/instagram"
	"github.com/igpeek/igpeek/internal/logger"
	"github.com/igpeek/igpeek/internal/media"
	"github.com/igpeek/igpeek/internal/pipeline"
	"github.com/igpeek/igpeek/internal/server"
)

func runServe(cfgPath string) {
	fx.New(
		fx.Provide(
			func() (config.Config, error) { return provideConfig(cfgPath) },
			provideLogger,
			provideSessionProvider,
			provideResolver,
			provideFetcher,
			provideStreamer,
			providePipeline,
			provideAdapters,
			provideRouter,
			provideConnections,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
		fx.Invoke(startChannels, startServer),
	).Run()
}

func provideConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideSessionProvider(cfg config.Config, log *slog.Logger) *instagram.Provider {
	return instagram.NewProvider(instagram.Options{
		Username:    cfg.Instagram.Username,
		Password:    cfg.Instagram.Password,
		CookiesFile: cfg.Instagram.CookiesFile,
	}, log)
}

func provideResolver(sessions *instagram.Provider, log *slog.Logger) *instagram.Resolver {
	return instagram.NewResolver(sessions, log)
}

func provideFetcher(sessions *instagram.Provider) *instagram.Fetcher {
	return instagram.NewFetcher(sessions)
}

func provideStreamer() *media.Streamer {
	return media.NewStreamer(0)
}

func providePipeline(resolver *instagram.Resolver, fetcher *instagram.Fetcher, streamer *media.Streamer, cfg config.Config, log *slog.Logger) *pipeline.Pipeline {
	return pipeline.New(resolver, fetcher, streamer, cfg.SneakPeek.MaxPhotos, log)
}

func provideAdapters(cfg config.Config, log *slog.Logger) []channel.Adapter {
	var adapters []channel.Adapter
	if cfg.Telegram.BotToken != "" {
		adapters = append(adapters, telegram.New(cfg.Telegram.BotToken, log))
	}
	if cfg.Discord.BotToken != "" {
		adapters = append(adapters, discord.New(cfg.Discord.BotToken, log))
	}
	return adapters
}

func provideRouter(p *pipeline.Pipeline, adapters []channel.Adapter, log *slog.Logger) *bot.Router {
	senders := make(map[channel.Type]channel.Sender, len(adapters))
	for _, a := range adapters {
		senders[a.Type()] = a
	}
	return bot.NewRouter(p, senders, log)
}

// connectionSet tracks live channel connections for shutdown and health.
type connectionSet struct {
	conns []channel.Connection
}

func provideConnections() *connectionSet {
	return &connectionSet{}
}

func startChannels(lc fx.Lifecycle, adapters []channel.Adapter, router *bot.Router, set *connectionSet, log *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if len(adapters) == 0 {
				return fmt.Errorf("no channel adapters configured: set a telegram or discord bot token")
			}
			for _, adapter := range adapters {
				conn, err := adapter.Connect(context.Background(), router.Handle)
				if err != nil {
					return fmt.Errorf("connect %s: %w", adapter.Type(), err)
				}
				set.conns = append(set.conns, conn)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for _, conn := range set.conns {
				if err := conn.Stop(ctx); err != nil {
					log.Warn("stop channel failed",
						slog.String("channel", conn.ChannelType().String()),
						slog.Any("error", err))
				}
			}
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, set *connectionSet, log *slog.Logger) {
	srv := server.New(cfg.Server.Addr, func() []channel.Connection { return set.conns }, log)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					log.Error("ops server failed", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
