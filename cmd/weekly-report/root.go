package main

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "weekly-report",
	Short:         "Weekly task report bot",
	Long:          `Reads the task sheet, builds the weekly report and delivers it to Telegram.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the bot with the weekly schedule (default)",
		RunE:  runServe,
	}

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Build the report and print the messages it would send",
		RunE:  runPreview,
	}

	sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Build the report and send it to one chat",
		RunE:  runSend,
	}

	sendChatID int64
)

func init() {
	rootCmd.AddCommand(serveCmd, previewCmd, sendCmd)

	sendCmd.Flags().Int64Var(&sendChatID, "chat-id", 0, "Telegram chat id to send the report to")
	_ = sendCmd.MarkFlagRequired("chat-id")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	bar := newSpinner("Reading task sheet")
	rep, err := a.reportUC.Generate(ctx)
	finishBar(bar)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n--- intro ---\n%s\n", a.notifier.Intro())
	for i, chunk := range a.notifier.Chunks(rep.Text) {
		fmt.Fprintf(out, "--- chunk %d ---\n%s\n", i+1, chunk)
	}
	fmt.Fprintf(out, "\nDone: %d, in progress: %d\n", rep.DoneCount, rep.InProgressCount)
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	delivery, err := a.reportUC.SendReport(ctx, sendChatID)
	if err != nil {
		return fmt.Errorf("send report to %d: %w", sendChatID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %d of %d parts to %d\n", delivery.Sent, delivery.Chunks, sendChatID)
	return nil
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
