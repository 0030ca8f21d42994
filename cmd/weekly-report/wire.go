package main

import (
	"context"
	"fmt"

	"weekly-task-report/config"
	"weekly-task-report/internal/notify"
	"weekly-task-report/internal/report"
	"weekly-task-report/internal/report/repository"
	gsheetsRepo "weekly-task-report/internal/report/repository/gsheets"
	xlsxRepo "weekly-task-report/internal/report/repository/xlsx"
	"weekly-task-report/internal/report/usecase"
	"weekly-task-report/pkg/datemath"
	"weekly-task-report/pkg/log"
	"weekly-task-report/pkg/telegram"
)

// app holds the components every command shares.
type app struct {
	cfg      *config.Config
	l        log.Logger
	dateMath *datemath.Parser
	bot      *telegram.Bot
	notifier *notify.Notifier
	reportUC report.UseCase
}

func newApp(ctx context.Context) (*app, error) {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// 3. Report domain
	dateMath, err := datemath.NewParser(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report timezone: %w", err)
	}

	bot := telegram.NewBot(cfg.Telegram.BotToken)
	bot.SetTimeouts(telegram.Timeouts{
		Connect: cfg.Telegram.ConnectTimeout,
		Request: cfg.Telegram.SendTimeout,
		Poll:    cfg.Telegram.PollTimeout,
	})

	notifier := notify.New(logger, bot, notify.Config{
		IntroMentions:  cfg.Report.IntroMentions,
		IntroText:      cfg.Report.IntroText,
		ChunkSize:      cfg.Report.ChunkSize,
		Placeholder:    report.EmptySectionLine,
		RetryAttempts:  cfg.Report.RetryAttempts,
		RetryBaseDelay: cfg.Report.RetryBaseDelay,
	})

	reportUC := usecase.New(logger, newSheetRepository(ctx, logger, cfg), notifier, dateMath, usecase.Options{
		Columns: report.Columns{
			Task:             cfg.Columns.Task,
			Link:             cfg.Columns.Link,
			Status:           cfg.Columns.Status,
			ClosedDate:       cfg.Columns.ClosedDate,
			StatusDone:       cfg.Columns.StatusDone,
			StatusInProgress: cfg.Columns.StatusInProgress,
		},
		ChatID: cfg.Report.ChatID,
	})

	return &app{
		cfg:      cfg,
		l:        logger,
		dateMath: dateMath,
		bot:      bot,
		notifier: notifier,
		reportUC: reportUC,
	}, nil
}

func newSheetRepository(ctx context.Context, l log.Logger, cfg *config.Config) repository.SheetRepository {
	if cfg.Sheets.Source == config.SourceXLSX {
		l.Infof(ctx, "Task source: workbook %s, sheet %q", cfg.Sheets.WorkbookPath, cfg.Sheets.SheetName)
		return xlsxRepo.New(l, cfg.Sheets.WorkbookPath, cfg.Sheets.SheetName)
	}
	l.Infof(ctx, "Task source: spreadsheet %s, sheet %q", cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	return gsheetsRepo.New(l, gsheetsRepo.ServiceAccountOpener(
		cfg.Sheets.CredentialsPath, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName,
	))
}
