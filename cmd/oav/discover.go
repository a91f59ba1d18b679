package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/entur/oav/internal/config"
)

func discoverCmd() *cobra.Command {
	var (
		root  string
		depth int
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List OpenAPI documents found under root",
		RunE: func(_ *cobra.Command, _ []string) error {
			if depth <= 0 {
				cfg, err := config.Load(root)
				if err != nil {
					return err
				}
				depth = cfg.SearchDepth
			}

			found, err := config.DiscoverSpec(root, depth)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				fmt.Println("no OpenAPI documents found")
				return nil
			}
			for _, f := range found {
				fmt.Println(f)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory to search")
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum search depth (0 uses the configured default)")
	return cmd
}
