package main

import (
	"fmt"
	"os"

	"github.com/aretw0/scormkit/internal/config"
	"github.com/aretw0/scormkit/pkg/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scormkit",
	Short: "scormkit is a SCORM runtime session toolkit",
	Long: `scormkit serves an embedded SCORM 1.2/2004 LMS over HTTP, runs scripted or
interactive learner sessions against it, and inspects the fallback storage
content uses when no LMS is reachable.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable protocol traces on stderr")
	rootCmd.PersistentFlags().String("store", "", "Fallback storage driver: memory, file or redis")
	rootCmd.PersistentFlags().String("storage-dir", "", "Directory of the file storage driver")
}

// loadConfig reads the config file, then lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		cfg.Session.Debug = session.Bool(debug)
	}
	if flags.Changed("store") {
		cfg.Storage.Driver, _ = flags.GetString("store")
	}
	if flags.Changed("storage-dir") {
		cfg.Storage.Dir, _ = flags.GetString("storage-dir")
	}
	if flags.Lookup("dialect") != nil && flags.Changed("dialect") {
		cfg.Session.Version, _ = flags.GetString("dialect")
	}
	return cfg, cfg.Validate()
}
