package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Println("oav (build info unavailable)")
				return nil
			}

			version := info.Main.Version
			if version == "" || version == "(devel)" {
				version = "dev"
			}

			var revision, buildTime string
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					revision = s.Value
					if len(revision) > 12 {
						revision = revision[:12]
					}
				case "vcs.time":
					buildTime = s.Value
				}
			}

			fmt.Printf("oav %s\n", version)
			fmt.Printf("  module:  %s\n", info.Main.Path)
			fmt.Printf("  go:      %s\n", info.GoVersion)
			if revision != "" {
				fmt.Printf("  commit:  %s\n", revision)
			}
			if buildTime != "" {
				fmt.Printf("  built:   %s\n", buildTime)
			}
			return nil
		},
	}
}
