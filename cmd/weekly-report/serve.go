package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"weekly-task-report/config"
	"weekly-task-report/internal/access"
	"weekly-task-report/internal/httpserver"
	"weekly-task-report/internal/netdiag"
	tgDelivery "weekly-task-report/internal/report/delivery/telegram"
	"weekly-task-report/internal/schedule"
	"weekly-task-report/internal/webhook"
	"weekly-task-report/pkg/workqueue"
)

const (
	ngrokAPIBase     = "http://ngrok:4040"
	queueStopTimeout = 30 * time.Second
)

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg, logger := a.cfg, a.l

	ctx := cmd.Context()
	logger.Info(ctx, "Starting weekly task report bot...")
	logger.Infof(ctx, "Environment: %s, mode: %s, timezone: %s", cfg.Environment.Name, cfg.Telegram.Mode, cfg.Report.Timezone)

	// 1. Work queue, detached from the signal context so queued jobs drain on shutdown
	queue := workqueue.New(logger, cfg.Worker.QueueSize)
	if err := queue.Start(context.WithoutCancel(ctx), cfg.Worker.Workers); err != nil {
		return err
	}
	defer func() {
		if err := queue.Stop(queueStopTimeout); err != nil {
			logger.Warnf(context.Background(), "Work queue: %v", err)
		}
	}()

	// 2. Access guard
	chatIDs, badChats := access.ParseIDs(cfg.Access.AllowedChatIDs)
	for _, item := range badChats {
		logger.Warnf(ctx, "Invalid ALLOWED_CHAT_IDS entry ignored: %q", item)
	}
	userIDs, badUsers := access.ParseIDs(cfg.Access.AllowedUserIDs)
	for _, item := range badUsers {
		logger.Warnf(ctx, "Invalid ALLOWED_TG_USERS entry ignored: %q", item)
	}
	guard := access.NewGuard(chatIDs, userIDs)

	// 3. Telegram commands
	diag := netdiag.New(netdiag.Config{
		Host:         cfg.Netdiag.Host,
		HTTPAttempts: cfg.Netdiag.HTTPAttempts,
		Timeout:      cfg.Netdiag.Timeout,
	}, func(ctx context.Context) error {
		_, err := a.bot.GetMe(ctx)
		return err
	})
	telegramHandler := tgDelivery.New(logger, a.reportUC, a.bot, guard,
		webhook.NewRateLimiter(cfg.Access.CommandRateLimitPerMin), diag, queue)

	// 4. Weekly schedule
	if cfg.Schedule.Enabled {
		scheduler, err := schedule.New(logger, queue, a.dateMath.Location(), cfg.Schedule.Cron, a.reportUC.ScheduledReport)
		if err != nil {
			return err
		}
		scheduler.Start(ctx)
		defer scheduler.Stop(context.Background())
	} else {
		logger.Warn(ctx, "Scheduler disabled")
	}

	// 5. HTTP server, plus the poller in polling mode
	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Ready:       queue.Running,
	}
	if cfg.Telegram.Mode == config.ModeWebhook {
		srvCfg.TelegramHandler = telegramHandler
		srvCfg.Security = webhook.NewSecurityValidator(webhook.SecurityConfig{
			SecretToken:     cfg.Telegram.WebhookSecret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		})
	}
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})

	if cfg.Telegram.Mode == config.ModeWebhook {
		registerWebhook(gctx, a)
	} else {
		poller := tgDelivery.NewPoller(logger, a.bot, telegramHandler)
		g.Go(func() error {
			return poller.Run(gctx)
		})
	}

	logger.Info(ctx, "Bot started. Waiting for /otchet")
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info(context.Background(), "Bot stopped gracefully")
	return nil
}

// registerWebhook points Telegram at this service, auto-detecting ngrok when
// no URL is configured.
func registerWebhook(ctx context.Context, a *app) {
	webhookURL := a.cfg.Telegram.WebhookURL
	if webhookURL == "" {
		ngrokURL, err := detectNgrokURL(ctx, ngrokAPIBase)
		if err != nil {
			a.l.Warnf(ctx, "Could not detect ngrok URL: %v", err)
			return
		}
		webhookURL = ngrokURL + "/webhook/telegram"
		a.l.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
	}

	if err := a.bot.SetWebhook(ctx, webhookURL, a.cfg.Telegram.WebhookSecret); err != nil {
		a.l.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	a.l.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
