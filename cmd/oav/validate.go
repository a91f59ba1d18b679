package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/entur/oav/internal/config"
	"github.com/entur/oav/internal/pipeline"
)

func validateCmd() *cobra.Command {
	var (
		root       string
		specFlag   string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Lint, generate, and compile an OpenAPI document",
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

			ctx, cancel := signalContext(cmd.Context())

			input := pipeline.Input{Config: cfg, SpecPath: specPath, WorkDir: absRoot}
			events := pipeline.Run(ctx, input, cancel)

			var report *pipeline.ValidateReport
			for event := range events {
				switch event.Kind {
				case pipeline.EventPhaseStarted:
					slog.Info("phase started", "phase", event.Phase.Kind, "generator", event.Phase.Generator, "scope", event.Phase.Scope)
				case pipeline.EventLog:
					fmt.Println(event.Line)
				case pipeline.EventPhaseFinished:
					slog.Info("phase finished", "phase", event.Phase.Kind, "success", event.Success)
				case pipeline.EventCompleted:
					report = event.Report
				case pipeline.EventAborted:
					return fmt.Errorf("pipeline aborted: %s", event.Reason)
				}
			}

			if report == nil {
				return fmt.Errorf("pipeline produced no report")
			}

			fmt.Printf("%s: %d/%d passed\n", report.Spec, report.Summary.Passed, report.Summary.Total)

			if reportPath != "" {
				if err := writeReport(reportPath, report); err != nil {
					return err
				}
			}
			if report.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d steps failed", report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "project root containing the .oavc config and spec")
	cmd.Flags().StringVar(&specFlag, "spec", "", "path to the OpenAPI document, relative to root (auto-discovered if omitted)")
	cmd.Flags().StringVar(&reportPath, "report", "", "write the final report as JSON to this path")
	return cmd
}

// resolveSpecPath normalizes an explicitly given spec path, or runs
// auto-discovery (erroring on zero or multiple candidates) when spec is
// blank.
func resolveSpecPath(root, spec string, searchDepth int) (string, error) {
	if spec != "" {
		return config.NormalizeSpecPath(root, spec)
	}

	candidates, err := config.DiscoverSpec(root, searchDepth)
	if err != nil {
		return "", fmt.Errorf("discover spec: %w", err)
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no OpenAPI document found under %s (pass --spec explicitly)", root)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("multiple OpenAPI documents found under %s, pass --spec to disambiguate: %v", root, candidates)
	}
}

func writeReport(path string, report *pipeline.ValidateReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", path, err)
	}
	slog.Info("report written", "path", path)
	return nil
}
