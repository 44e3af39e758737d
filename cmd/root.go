// Package cmd is for command line interactions with the claspy application
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/bioforensics/claspy/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "claspy",
	Short: `Cell line authentication with STR profiles.
Rank the cell lines in the Cellosaurus database by their similarity to a query profile`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig seeds Viper with defaults, the optional .claspy.yaml settings
// file, and CLASPY_* environment variables. Bound command flags take
// precedence over all three.
func initConfig() {
	config.SetDefaults()
	viper.SetConfigName(".claspy")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".claspy"))
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("claspy")
	viper.AutomaticEnv()

	// the settings file is optional
	_ = viper.ReadInConfig()
}
