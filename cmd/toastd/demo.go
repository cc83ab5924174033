package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toaster"
	"github.com/toastline-dev/toastline/pkg/tui"
)

func demoCmd() *cobra.Command {
	var themeFile string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal demo",
		Long: `Run the terminal demo.

A full toast engine runs in-process; keys raise toasts at each
level and the view follows the store live, expiry timers included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(themeFile)
		},
	}

	cmd.Flags().StringVarP(&themeFile, "theme", "t", "", "Theme overrides file (YAML)")

	return cmd
}

func runDemo(themeFile string) error {
	th := theme.Default()
	if themeFile != "" {
		loaded, err := theme.Load(themeFile)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		th = loaded
	}

	tr := toaster.New()
	defer tr.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tr, th)
}
