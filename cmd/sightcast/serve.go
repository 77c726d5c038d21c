package main

import (
	"net"
	"strconv"

	"sightcast/config"
	"sightcast/detserver"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var addr string
	var announce bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bundled annotation server with a dummy detector",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := pslog.Ctx(ctx)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if announce {
				cfg.Server.Announce = true
			}

			srv := detserver.New(func() detserver.Detector {
				return &detserver.DummyDetector{}
			}, logger)

			if cfg.Server.Announce {
				port := announcePort(cfg.Server.Addr)
				mdns, err := detserver.Announce("sightcast", port)
				if err != nil {
					logger.Warn("mdns announcement failed", "err", err)
				} else {
					defer mdns.Shutdown()
					logger.Info("announced over mdns", "port", port)
				}
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run(cfg.Server.Addr) }()
			select {
			case <-ctx.Done():
				logger.Info("gracefully closing")
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8700)")
	cmd.Flags().BoolVar(&announce, "announce", false, "advertise the server over mDNS")
	return cmd
}

func announcePort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 8700
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 8700
	}
	return port
}
