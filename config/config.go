// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/crisprtk/cctk/internal/seqops"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to environment variable overrides, eg: CCTK_BLAST_THREADS
	EnvPrefix = "CCTK"

	// settingsName is the base name of the optional settings file in $HOME
	settingsName = ".cctk"
)

// BlastConfig is for settings passed through to blastn.
type BlastConfig struct {
	// the blastn task, short queries like spacers need blastn-short
	Task string `mapstructure:"task"`

	// the expect value cutoff. kept as a string so it's passed to blastn as written
	Evalue string `mapstructure:"evalue"`

	// blastn's -max_target_seqs. spacer searches have few queries with many
	// expected hits so this is well above the blastn default of 500
	MaxTargetSeqs int `mapstructure:"max-target-seqs"`

	// number of threads for each blastn run
	Threads int `mapstructure:"threads"`

	// any other blastn options, whitespace separated
	Options string `mapstructure:"options"`
}

// AlignConfig is the Needleman-Wunsch scoring used to compare spacers to protospacers.
type AlignConfig struct {
	Match    float64 `mapstructure:"match"`
	Mismatch float64 `mapstructure:"mismatch"`
	Gap      float64 `mapstructure:"gap"`
}

// Scoring converts the settings to a scoring scheme.
func (a AlignConfig) Scoring() seqops.Scoring {
	return seqops.Scoring{
		Match:    a.Match,
		Mismatch: a.Mismatch,
		Gap:      a.Gap,
	}
}

// Config is the root-level settings struct and is a mix
// of settings available in the settings file and those
// available from the command line
type Config struct {
	// path to the blastn executable
	Blastn string `mapstructure:"blastn"`

	// path to the blastdbcmd executable
	Blastdbcmd string `mapstructure:"blastdbcmd"`

	// blastn settings
	Blast BlastConfig `mapstructure:"blast"`

	// number of bases to report up and downstream of each protospacer (for PAMs)
	Flank int `mapstructure:"flank"`

	// alignment scoring
	Align AlignConfig `mapstructure:"align"`

	// whether to log progress to stderr
	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers the default settings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("blastn", "blastn")
	v.SetDefault("blastdbcmd", "blastdbcmd")
	v.SetDefault("blast.task", "blastn-short")
	v.SetDefault("blast.evalue", "10")
	v.SetDefault("blast.max-target-seqs", 10000)
	v.SetDefault("blast.threads", 1)
	v.SetDefault("blast.options", "")
	v.SetDefault("flank", 10)
	v.SetDefault("align.match", seqops.DefaultScoring.Match)
	v.SetDefault("align.mismatch", seqops.DefaultScoring.Mismatch)
	v.SetDefault("align.gap", seqops.DefaultScoring.Gap)
	v.SetDefault("verbose", false)
	v.SetDefault("settings", "")
}

func init() {
	SetDefaults(viper.GetViper())
}

// New returns a new Config struct populated by Viper settings
// (defaults, the settings file, CCTK_ environment variables
// and any bound command line flags, in increasing precedence)
func New() (*Config, error) {
	return Load(viper.GetViper())
}

// Load reads the settings file named by the "settings" key, or $HOME/.cctk.yaml
// if there is one, and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName(settingsName)
		v.SetConfigType("yaml")
		v.AddConfigPath(home)

		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file in %s: %w", home, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if c.Blast.Threads < 1 {
		return nil, fmt.Errorf("blast threads must be at least 1, not %d", c.Blast.Threads)
	}
	if c.Flank < 0 {
		return nil, fmt.Errorf("flank must not be negative, not %d", c.Flank)
	}
	if err := c.Align.Scoring().Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
