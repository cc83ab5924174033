package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌─┐┌─┐┌┬┐┬  ┬┌┐┌┌─┐
   ║ │ │├─┤└─┐ │ │  ││││├┤
   ╩ └─┘┴ ┴└─┘ ┴ ┴─┘┴┘└┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "toastd",
		Short: "Toast notifications for Go applications",
		Long: `Toastline is a toast notification engine for Go.

It keeps a reactive store of timed notifications and bridges it to
whatever surface you have:

  • HTTP API with a live WebSocket feed
  • Server-rendered demo page
  • Terminal UI
  • Desktop notifications over D-Bus
  • Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the toastline ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}
