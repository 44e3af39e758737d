// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/bioforensics/claspy/internal/claspy"
	"github.com/spf13/viper"
)

// SearchConfig is settings for scoring and reporting a database search
type SearchConfig struct {
	// scoring algorithm: tanabe (2S/(Q+R)), query (S/Q), or reference (S/R)
	Algorithm string `mapstructure:"algorithm"`

	// mode for handling missing data: intersect, query, or reference
	Mode string `mapstructure:"mode"`

	// do not report candidate cell lines with a best score below this
	MinScore float64 `mapstructure:"min-score"`

	// do not report more than this many candidate cell lines; <=0 disables
	MaxHits int `mapstructure:"max-hits"`

	// include the Amelogenin marker in scoring calculations
	Amel bool `mapstructure:"amel"`

	// worker goroutines for candidate scoring
	Threads int `mapstructure:"threads"`
}

// SpeciesConfig is settings for the species filter
type SpeciesConfig struct {
	// compare the query only against references of its inferred species
	Restrict bool `mapstructure:"restrict"`

	// what to do when the query's species cannot be inferred:
	// warn-and-include-all or abort
	OnIndeterminate string `mapstructure:"on-indeterminate"`
}

// Config is the root-level settings struct and is a mix of settings
// available in .claspy.yaml and those available from the command line
type Config struct {
	// path to the installed Cellosaurus database
	DB string `mapstructure:"db"`

	// path for the full CSV report; empty means summary only
	Out string `mapstructure:"out"`

	// search settings
	Search SearchConfig `mapstructure:"search"`

	// species filter settings
	Species SpeciesConfig `mapstructure:"species"`
}

// SetDefaults registers the default for every setting with Viper. Called
// before flags are bound so flags and the settings file override these.
func SetDefaults() {
	viper.SetDefault("db", "")
	viper.SetDefault("out", "")
	viper.SetDefault("search.algorithm", string(claspy.AlgorithmQuery))
	viper.SetDefault("search.mode", string(claspy.ModeIntersect))
	viper.SetDefault("search.min-score", 0.0)
	viper.SetDefault("search.max-hits", 20)
	viper.SetDefault("search.amel", false)
	viper.SetDefault("search.threads", 1)
	viper.SetDefault("species.restrict", true)
	viper.SetDefault("species.on-indeterminate", string(claspy.WarnAndIncludeAll))
}

// New returns a new Config struct populated by Viper settings (either from
// the local .claspy.yaml) and/or command line arguments
func New() Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}

// RankOptions translates the settings into options for a ranking run.
// Unrecognized algorithm, mode, or policy names fail later, loudly, in the
// core rather than being silently coerced here.
func (c Config) RankOptions() claspy.RankOptions {
	return claspy.RankOptions{
		ScoreOptions: claspy.ScoreOptions{
			Algorithm:   claspy.Algorithm(c.Search.Algorithm),
			Mode:        claspy.Mode(c.Search.Mode),
			IncludeAmel: c.Search.Amel,
		},
		RestrictSpecies: c.Species.Restrict,
		OnIndeterminate: claspy.IndeterminatePolicy(c.Species.OnIndeterminate),
		Threads:         c.Search.Threads,
	}
}
