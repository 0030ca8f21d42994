package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "weekly-task-report/docs" // Swagger docs
)

// @title       Weekly Task Report Bot
// @description Builds the weekly task report from a spreadsheet and delivers it to Telegram.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
