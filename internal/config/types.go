// Package config holds the Configuration record (recognized .oavc options),
// YAML decoding, and the spec-discovery walk.
package config

// Mode selects which generator scopes run.
type Mode string

const (
	ModeServer Mode = "server"
	ModeClient Mode = "client"
	ModeBoth   Mode = "both"
)

// Linter selects which container-based linter the Lint phase invokes.
type Linter string

const (
	LinterSpectral Linter = "spectral"
	LinterRedocly  Linter = "redocly"
	LinterNone     Linter = "none"
)

// Config is the full set of recognized .oavc options, decoded from YAML.
type Config struct {
	Spec                 string            `yaml:"spec"`
	Mode                 Mode              `yaml:"mode"`
	Lint                 bool              `yaml:"lint"`
	Generate             bool              `yaml:"generate"`
	Compile              bool              `yaml:"compile"`
	Linter               Linter            `yaml:"linter"`
	ServerGenerators     []string          `yaml:"server_generators"`
	ClientGenerators     []string          `yaml:"client_generators"`
	GeneratorOverrides   map[string]string `yaml:"generator_overrides"`
	GeneratorImage       string            `yaml:"generator_image"`
	RedoclyImage         string            `yaml:"redocly_image"`
	SpectralImage        string            `yaml:"spectral_image"`
	SpectralRuleset      string            `yaml:"spectral_ruleset"`
	SpectralFailSeverity string            `yaml:"spectral_fail_severity"`
	DockerTimeout        uint64            `yaml:"docker_timeout"`
	SearchDepth          int               `yaml:"search_depth"`
	Jobs                 Jobs              `yaml:"jobs"`
}

// Default returns the built-in default configuration, matching the values
// shipped with the entur API guidelines ruleset.
func Default() Config {
	return Config{
		Mode:                 ModeServer,
		Lint:                 true,
		Generate:             true,
		Compile:              true,
		Linter:               LinterSpectral,
		ServerGenerators:     []string{},
		ClientGenerators:     []string{},
		GeneratorOverrides:   map[string]string{},
		GeneratorImage:       "openapitools/openapi-generator-cli:v7.17.0",
		RedoclyImage:         "redocly/cli:1.25.5",
		SpectralImage:        "stoplight/spectral:6",
		SpectralRuleset:      "https://raw.githubusercontent.com/entur/api-guidelines/refs/tags/v2/.spectral.yml",
		SpectralFailSeverity: "error",
		DockerTimeout:        300,
		SearchDepth:          4,
		Jobs:                 Jobs{Auto: true},
	}
}
