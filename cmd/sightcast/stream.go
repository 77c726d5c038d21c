package main

import (
	"context"
	"errors"
	"time"

	"sightcast/agent"
	"sightcast/capturer"
	"sightcast/config"
	"sightcast/discovery"
	"sightcast/overlay"
	"sightcast/playback"
	"sightcast/session"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newStreamCmd() *cobra.Command {
	var cfgPath string
	var endpoint string
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Run the annotation client against a synthetic video source",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if endpoint != "" {
				cfg.Endpoint = endpoint
			}
			if cfg.Endpoint == "" && cfg.Discovery.Enabled {
				cfg.Endpoint, err = discovery.Browse(ctx,
					cfg.Discovery.Service, cfg.Discovery.Domain,
					time.Duration(cfg.Discovery.TimeoutMS)*time.Millisecond, logger)
				if err != nil {
					return err
				}
			}

			player := playback.NewPatternPlayer(cfg.Stream.CaptureWidth, cfg.Stream.CaptureHeight)
			vw, vh := player.FrameSize()
			// headless run: draws land in the log at double resolution
			surface := overlay.NewLogSurface(vw*2, vh*2, logger.With("surface", "log"))

			sess := session.New(cfg.Endpoint, logger)
			capt := capturer.New(player, capturer.JPEGCodec{Quality: cfg.Stream.JPEGQuality}, logger)
			rend := overlay.NewRenderer(surface, cfg.Overlay.Opacity, logger)

			a := agent.New(sess, player, capt, rend, agent.Config{
				SendInterval:  time.Duration(cfg.Stream.SendIntervalMS) * time.Millisecond,
				CaptureWidth:  cfg.Stream.CaptureWidth,
				CaptureHeight: cfg.Stream.CaptureHeight,
			}, logger)

			err = a.Run(ctx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			logger.Info("gracefully closing")
			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "annotation server websocket endpoint")
	return cmd
}
