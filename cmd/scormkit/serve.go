package main

import (
	"github.com/aretw0/scormkit/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an embedded LMS over the HTTP bridge",
	Long: `Starts an in-memory SCORM LMS speaking the selected dialect and exposes it as
POST /api/{method}, with /events (SSE call trace), /metrics and /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr := cfg.Bridge.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		name, _ := cmd.Flags().GetString("learner-name")
		id, _ := cmd.Flags().GetString("learner-id")

		return cli.Serve(cmd.Context(), cli.ServeOptions{
			Addr:        addr,
			Version:     cfg.Session.Version,
			LearnerName: name,
			LearnerID:   id,
			Debug:       cfg.Session.Debug != nil && *cfg.Session.Debug,
			Output:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("dialect", "1.2", "SCORM dialect of the embedded LMS (1.2 or 2004)")
	serveCmd.Flags().String("learner-name", "", "Learner name reported by the LMS")
	serveCmd.Flags().String("learner-id", "", "Learner ID reported by the LMS")
}
