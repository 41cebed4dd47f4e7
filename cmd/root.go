// Package cmd is for command line interactions with the cctk application
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "cctk",
	Short: `CRISPR spacer analysis. Find spacer matches in BLAST databases
and compare sequences`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	// settings is an optional settings file that overrides the defaults in config
	RootCmd.PersistentFlags().String("settings", "", "settings file (default $HOME/.cctk.yaml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}
