package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"activityroster/internal/adapters/cli"
	"activityroster/internal/adapters/discord"
	"activityroster/internal/adapters/web"
	"activityroster/internal/application"
	"activityroster/internal/config"
	"activityroster/internal/infrastructure/backend"
	"activityroster/internal/infrastructure/i18n"
	"activityroster/internal/infrastructure/metrics"
)

const shutdownTimeout = 10 * time.Second

// app is the wiring shared by every command: backend client -> use cases.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	translator *i18n.Translator
	roster     *application.RosterService
	locale     string
}

func newApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.backend != "" {
		cfg.BackendURL = flags.backend
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	m := metrics.New()
	httpClient := &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: m.InstrumentTransport(http.DefaultTransport),
	}
	client, err := backend.NewClient(cfg.BackendURL, httpClient)
	if err != nil {
		return nil, err
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	return &app{
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		translator: translator,
		roster:     application.NewRosterService(backend.NewActivityGateway(client), translator, m, logger),
		locale:     translator.Negotiate(flags.locale),
	}, nil
}

func (a *app) presenter(cmd *cobra.Command) *cli.Presenter {
	return cli.NewPresenter(a.roster, a.translator, a.locale, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// serve runs the web server and the optional Discord bot until ctx is done
// or one of them fails.
func (a *app) serve(ctx context.Context) error {
	var bot *discord.Bot
	if a.cfg.DiscordEnabled() {
		handler := discord.NewHandler(a.roster, a.translator, a.cfg.StatusTTL, a.logger)
		var err error
		bot, err = discord.NewBot(a.cfg.DiscordToken, a.cfg.DiscordGuildID, handler, a.logger)
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr: a.cfg.ListenAddr,
		Handler: web.NewServer(a.roster, a.translator, web.Options{
			StatusTTL:  a.cfg.StatusTTL,
			CSRFKey:    a.cfg.CSRFKey,
			CSRFSecure: a.cfg.CSRFSecure,
			Metrics:    a.metrics.Handler(),
			Logger:     a.logger,
		}).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", "addr", a.cfg.ListenAddr, "backend", a.cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if bot != nil {
		g.Go(func() error {
			return bot.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
