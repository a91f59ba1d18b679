package pipeline

import (
	"fmt"
	"time"

	"github.com/entur/oav/internal/config"
	"github.com/entur/oav/internal/container"
)

func stepTimeout(cfg config.Config) time.Duration {
	if cfg.DockerTimeout == 0 {
		return defaultStepTimeout
	}
	return time.Duration(cfg.DockerTimeout) * time.Second
}

func workMount(workDir string) string {
	return fmt.Sprintf("%s:/work", workDir)
}

// SpectralCommand builds the `docker run` invocation for a Spectral lint
// pass.
func SpectralCommand(cfg config.Config, workDir, specName string) container.Command {
	args := []string{"run", "--rm", "-v", workMount(workDir)}
	args = append(args, container.UserArgs()...)
	args = append(args, cfg.SpectralImage,
		"lint", "/work/"+specName,
		"--ruleset", cfg.SpectralRuleset,
		"--fail-severity", cfg.SpectralFailSeverity,
		"-f", "stylish",
	)
	return container.Command{Args: args, Timeout: stepTimeout(cfg)}
}

// RedoclyCommand builds the `docker run` invocation for a Redocly lint pass.
func RedoclyCommand(cfg config.Config, workDir, specName string) container.Command {
	args := []string{"run", "--rm", "-v", workMount(workDir)}
	args = append(args, container.UserArgs()...)
	args = append(args, cfg.RedoclyImage,
		"lint", "/work/"+specName,
		"--format", "stylish",
	)
	return container.Command{Args: args, Timeout: stepTimeout(cfg)}
}

// GenerateCommand builds the `docker run` invocation that generates code for
// one (generator, scope) pair.
func GenerateCommand(cfg config.Config, workDir, specName, generator, scope string) container.Command {
	args := []string{"run", "--rm", "-v", workMount(workDir)}
	args = append(args, container.UserArgs()...)
	outDir := fmt.Sprintf("/work/.generated/%s-%s", generator, scope)
	args = append(args, cfg.GeneratorImage,
		"generate",
		"-i", "/work/"+specName,
		"-g", generator,
		"-o", outDir,
	)
	return container.Command{Args: args, Timeout: stepTimeout(cfg)}
}

// CompileCommand builds the `docker run` invocation that compiles the
// output previously produced by GenerateCommand for the same
// (generator, scope) pair. If cfg.GeneratorOverrides names an image for
// generator, that image is used in place of cfg.GeneratorImage.
func CompileCommand(cfg config.Config, workDir, generator, scope string) container.Command {
	image := cfg.GeneratorImage
	if override, ok := cfg.GeneratorOverrides[generator]; ok {
		image = override
	}
	args := []string{"run", "--rm", "-v", workMount(workDir)}
	args = append(args, container.UserArgs()...)
	includes := fmt.Sprintf("/work/.generated/%s-%s", generator, scope)
	args = append(args, image, "batch", "--includes", includes)
	return container.Command{Args: args, Timeout: stepTimeout(cfg)}
}

// generatorStep is one (generator, scope) pair to run through Generate and
// Compile.
type generatorStep struct {
	Generator string
	Scope     string
}

// BuildGeneratorList expands cfg.Mode into the ordered list of
// (generator, scope) pairs the Generate/Compile phases must run: server
// generators with scope "server", client generators with scope "client",
// server before client when Mode is Both.
func BuildGeneratorList(cfg config.Config) []generatorStep {
	var steps []generatorStep
	if cfg.Mode == config.ModeServer || cfg.Mode == config.ModeBoth {
		for _, g := range cfg.ServerGenerators {
			steps = append(steps, generatorStep{Generator: g, Scope: "server"})
		}
	}
	if cfg.Mode == config.ModeClient || cfg.Mode == config.ModeBoth {
		for _, g := range cfg.ClientGenerators {
			steps = append(steps, generatorStep{Generator: g, Scope: "client"})
		}
	}
	return steps
}
