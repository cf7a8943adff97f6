// mockforge - dynamic mock API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	// A missing .env file is fine; explicit env wins either way.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "mockforge",
		Short:         "Mock API server with dynamic resources and custom endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.Flags().StringVarP(&flags.config, "config", "c", "", "path to config file (yaml or json)")
	root.Flags().StringVarP(&flags.listen, "listen", "l", "", "listen address (overrides config)")
	root.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.Flags().StringVar(&flags.logFormat, "log-format", "", "log format: text, json")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("mockforge %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var flags struct {
	config    string
	listen    string
	logLevel  string
	logFormat string
}
