package main

import (
	"os"

	"github.com/aretw0/scormkit/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a learner session",
	Long: `Runs a learner session from line commands (interactive on stdin, or a script file).
With --lms the session talks to a bridge started by "scormkit serve"; without it
every write degrades to the fallback storage.

Commands: connect, location [n [json]], suspend <json>, resume, score <n>,
complete, answer <i> <response>, record <i>, objective <i> <id> <score>,
progress <i> <id> <percent>, learner, status, terminate, quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lms") {
			cfg.Bridge.URL, _ = cmd.Flags().GetString("lms")
		}
		namespace, _ := cmd.Flags().GetString("session")
		headless, _ := cmd.Flags().GetBool("headless")
		escaped, _ := cmd.Flags().GetBool("escaped")

		opts := cli.RunOptions{
			Config:    cfg,
			Namespace: namespace,
			Headless:  headless,
			Escaped:   escaped,
			Output:    cmd.OutOrStdout(),
		}
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			opts.Script = f
		}

		return cli.RunSession(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("lms", "", "Base URL of an LMS bridge (empty: no LMS)")
	runCmd.Flags().String("dialect", "1.2", "SCORM dialect to configure (1.2 or 2004)")
	runCmd.Flags().String("session", "", "Fallback storage session ID (default: a new UUID)")
	runCmd.Flags().Bool("headless", false, "Run without banner and prompts; stop on the first failing command")
	runCmd.Flags().Bool("escaped", false, "Use the unambiguous escaped suspend data codec")
}
