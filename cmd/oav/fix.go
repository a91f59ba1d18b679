package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entur/oav/internal/config"
	"github.com/entur/oav/internal/container"
	"github.com/entur/oav/internal/fixengine"
	"github.com/entur/oav/internal/lintlog"
	"github.com/entur/oav/internal/pipeline"
	"github.com/entur/oav/internal/specindex"
)

func fixCmd() *cobra.Command {
	var (
		root     string
		specFlag string
		apply    bool
		checked  bool
	)

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Lint a spec and propose (optionally apply) fixes for known rule violations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root)
			if err != nil {
				return err
			}

			spec := specFlag
			if spec == "" {
				spec = cfg.Spec
			}
			specPath, err := resolveSpecPath(root, spec, cfg.SearchDepth)
			if err != nil {
				return err
			}

			absRoot, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}
			absSpecPath := filepath.Join(absRoot, specPath)

			log, err := runLintOnce(cmd.Context(), cfg, absRoot, specPath)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(absSpecPath)
			if err != nil {
				return fmt.Errorf("read spec: %w", err)
			}
			lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
			index := specindex.Parse(string(raw), nil)

			findings := lintlog.Parse(log)
			applied, skipped := 0, 0
			for _, finding := range findings {
				proposal, ok := fixengine.Propose(finding, index, lines)
				if !ok {
					skipped++
					continue
				}
				fmt.Printf("[%s] line %d: %s\n", proposal.Rule, proposal.TargetLine, proposal.Description)
				if !apply {
					continue
				}
				if checked {
					err = fixengine.ApplyChecked(proposal, absSpecPath)
				} else {
					err = fixengine.Apply(proposal, absSpecPath)
				}
				if err != nil {
					return fmt.Errorf("apply fix for %s: %w", proposal.Rule, err)
				}
				applied++
				// Re-index after every applied fix since line numbers shift.
				raw, err = os.ReadFile(absSpecPath)
				if err != nil {
					return fmt.Errorf("re-read spec: %w", err)
				}
				lines = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
				index = specindex.Parse(string(raw), index)
			}

			fmt.Printf("%d findings, %d fixable, %d applied\n", len(findings), len(findings)-skipped, applied)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root containing the .oavc config and spec")
	cmd.Flags().StringVar(&specFlag, "spec", "", "path to the OpenAPI document, relative to root (auto-discovered if omitted)")
	cmd.Flags().BoolVar(&apply, "apply", false, "write proposed fixes to the spec file instead of only reporting them")
	cmd.Flags().BoolVar(&checked, "checked", false, "validate each applied fix and roll it back if it leaves the document structurally invalid")
	return cmd
}

// runLintOnce spawns a single lint container and returns its accumulated log.
func runLintOnce(ctx context.Context, cfg config.Config, workDir, specPath string) (string, error) {
	var cmd container.Command
	if cfg.Linter == config.LinterRedocly {
		cmd = pipeline.RedoclyCommand(cfg, workDir, specPath)
	} else {
		cmd = pipeline.SpectralCommand(cfg, workDir, specPath)
	}

	lines, err := container.Spawn(ctx, cmd, container.NewCancelToken())
	if err != nil {
		return "", fmt.Errorf("spawn linter: %w", err)
	}

	var log string
	for line := range lines {
		if line.Kind == container.LineDone {
			log = line.Done.Log
		}
	}
	return log, nil
}
