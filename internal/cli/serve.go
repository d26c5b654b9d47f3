package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/growthbot/internal/bot"
	"github.com/example/growthbot/internal/httpapi"
	"github.com/example/growthbot/internal/scheduler"
)

var errNothingToServe = errors.New("nothing to serve: set TELEGRAM_BOT_TOKEN and/or HTTP_ADDR")

func newServeCommand(a *app) *cobra.Command {
	var remindNow bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, daily reminder and JSON API",
		Long: `Run the long-lived surfaces until interrupted:
  - the Telegram bot when TELEGRAM_BOT_TOKEN is set
  - the daily rollover and reminder when ENABLE_SCHEDULER is true and the bot runs
  - the JSON API when HTTP_ADDR is set`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, remindNow)
		},
	}
	cmd.Flags().BoolVar(&remindNow, "remind-now", false, "send the reminder once at startup if today is still pending")
	return cmd
}

func (a *app) serve(ctx context.Context, remindNow bool) error {
	cfg := a.cfg
	if cfg.Telegram.Token == "" && cfg.HTTP.Addr == "" {
		return errNothingToServe
	}

	g, ctx := errgroup.WithContext(ctx)
	run := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("component stopped", zap.String("component", name), zap.Error(err))
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	if cfg.Telegram.Token != "" {
		botConfig := bot.DefaultConfig()
		botConfig.OwnerChatID = cfg.Telegram.OwnerChatID

		b, err := bot.New(cfg.Telegram.Token, a.service, botConfig, a.logger.Named("bot"))
		if err != nil {
			return err
		}

		if cfg.Scheduler.Enabled {
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			sched := scheduler.New(a.service, b, cfg.Scheduler.ReminderTime, loc, a.logger.Named("scheduler"))
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			if remindNow {
				if err := sched.RunManualCheck(ctx); err != nil {
					a.logger.Warn("startup reminder failed", zap.Error(err))
				}
			}
		}

		run("bot", b.Start)
	}

	if cfg.HTTP.Addr != "" {
		srv := httpapi.NewServer(cfg.HTTP.Addr, httpapi.NewRouter(a.service, a.logger.Named("http")))
		run("http", func(ctx context.Context) error {
			return httpapi.Run(ctx, srv, a.logger.Named("http"))
		})
	}

	a.logger.Info("growthbot started", zap.String("store", cfg.Store.Driver))
	err := g.Wait()
	a.logger.Info("growthbot stopped")

	return err
}
