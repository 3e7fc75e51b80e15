package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string             `mapstructure:"log_level"`
	Paths    PathsConfig        `mapstructure:"paths"`
	Analysis AnalysisConfig     `mapstructure:"analysis"`
	Costs    map[string]float64 `mapstructure:"costs"`
}

type PathsConfig struct {
	Manifest string `mapstructure:"manifest"`
	Output   string `mapstructure:"output"`
}

type AnalysisConfig struct {
	L1        string  `mapstructure:"l1"`
	Target    string  `mapstructure:"target"`
	Tolerance float64 `mapstructure:"tolerance"`
	Workers   int     `mapstructure:"workers"`
	Format    string  `mapstructure:"format"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Paths: PathsConfig{
			Manifest: "tokdrift.manifest.yaml",
			Output:   "",
		},
		Analysis: AnalysisConfig{
			L1:        "en",
			Target:    "SAME",
			Tolerance: 1e-9,
			Workers:   4,
			Format:    FormatTable,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("paths-manifest", defaults.Paths.Manifest, "Path to the experiment manifest (yaml)")
	fs.String("paths-output", defaults.Paths.Output, "Report output file (default stdout)")
	fs.String("analysis-l1", defaults.Analysis.L1, "Label of the first language")
	fs.String("analysis-target", defaults.Analysis.Target, "Category whose inflow and outflow are tracked")
	fs.Float64("analysis-tolerance", defaults.Analysis.Tolerance, "Numerical tolerance of the transport solver")
	fs.Int("analysis-workers", defaults.Analysis.Workers, "Comparison units solved concurrently")
	fs.String("analysis-format", defaults.Analysis.Format, "Report format (table|json|yaml)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("TOKDRIFT")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths-manifest", "TOKDRIFT_MANIFEST", "TOKDRIFT_PATHS_MANIFEST"); err != nil {
		return Config{}, fmt.Errorf("bind manifest env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tokdrift")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("paths.manifest", c.Paths.Manifest)
	v.SetDefault("paths.output", c.Paths.Output)
	v.SetDefault("analysis.l1", c.Analysis.L1)
	v.SetDefault("analysis.target", c.Analysis.Target)
	v.SetDefault("analysis.tolerance", c.Analysis.Tolerance)
	v.SetDefault("analysis.workers", c.Analysis.Workers)
	v.SetDefault("analysis.format", c.Analysis.Format)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("paths.manifest", "paths-manifest")
	v.RegisterAlias("paths.output", "paths-output")
	v.RegisterAlias("analysis.l1", "analysis-l1")
	v.RegisterAlias("analysis.target", "analysis-target")
	v.RegisterAlias("analysis.tolerance", "analysis-tolerance")
	v.RegisterAlias("analysis.workers", "analysis-workers")
	v.RegisterAlias("analysis.format", "analysis-format")
}
