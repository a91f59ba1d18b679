// Command oav lints, generates, and compiles client/server code from an
// OpenAPI document by orchestrating containerized tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	root := &cobra.Command{
		Use:   "oav",
		Short: "oav — OpenAPI validation pipeline orchestrator",
		Long: `oav lints an OpenAPI document, generates server/client code for it, and
compiles the generated code, by running Spectral/Redocly/OpenAPI Generator
as containers and streaming their output back in real time.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initLogger(logLevel, logFormat)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")

	root.AddCommand(validateCmd())
	root.AddCommand(fixCmd())
	root.AddCommand(discoverCmd())
	root.AddCommand(versionCmd())
	return root
}
