package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	root := &cobra.Command{
		Use:           "sightcast",
		Short:         "Stream video frames to an annotation server and overlay the detections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newStreamCmd(), newServeCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		logger.With("err", err).Error("sightcast command failed")
		os.Exit(1)
	}
}
