package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toastline-dev/toastline/pkg/desktop"
	"github.com/toastline-dev/toastline/pkg/server"
	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		themeFile  string
		metrics    bool
		mirror     bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the toast bridge server",
		Long: `Run the HTTP bridge server.

The server exposes the toast API under /toasts, a live WebSocket
feed under /live, and a server-rendered demo page at /.

Configuration is read from flags, environment variables with the
TOASTD_ prefix, and an optional config file, in that order of
precedence.

Examples:
  toastd serve
  toastd serve --addr=:9090 --metrics
  toastd serve --theme=theme.yaml --mirror`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr, themeFile, metrics, mirror, configFile)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Listen address")
	cmd.Flags().StringVarP(&themeFile, "theme", "t", "", "Theme overrides file (YAML)")
	cmd.Flags().BoolVarP(&metrics, "metrics", "m", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "Mirror toasts to desktop notifications over D-Bus")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file")

	return cmd
}

func runServe(cmd *cobra.Command, addr, themeFile string, metrics, mirror bool, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix("TOASTD")
	v.AutomaticEnv()

	v.SetDefault("addr", addr)
	v.SetDefault("theme", themeFile)
	v.SetDefault("metrics", metrics)
	v.SetDefault("mirror", mirror)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Explicit flags win over config file and environment.
	if cmd.Flags().Changed("addr") {
		v.Set("addr", addr)
	}
	if cmd.Flags().Changed("theme") {
		v.Set("theme", themeFile)
	}
	if cmd.Flags().Changed("metrics") {
		v.Set("metrics", metrics)
	}
	if cmd.Flags().Changed("mirror") {
		v.Set("mirror", mirror)
	}

	th := theme.Default()
	if path := v.GetString("theme"); path != "" {
		loaded, err := theme.Load(path)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		th = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts := []toaster.Option{toaster.WithLogger(logger)}
	if v.GetBool("metrics") {
		opts = append(opts, toaster.WithMetrics(server.NewMetrics(prometheus.DefaultRegisterer)))
	}

	tr := toaster.New(opts...)
	defer tr.Close()

	if v.GetBool("mirror") {
		m, err := desktop.New(tr, "toastline", desktop.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("desktop mirror: %w", err)
		}
		defer m.Close()
	}

	srv := server.New(tr, server.Config{
		Addr:          v.GetString("addr"),
		Theme:         th,
		EnableMetrics: v.GetBool("metrics"),
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner()
	return srv.ListenAndServe(ctx)
}
