package main

import (
	"fmt"

	"github.com/aretw0/scormkit/internal/cli"
	"github.com/aretw0/scormkit/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect fallback storage sessions",
}

var storageLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List storage sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		backend, err := cli.OpenStorage(cfg, "", cli.StorageOptions{})
		if err != nil {
			return err
		}
		defer backend.Close()

		namespaces, err := backend.Namespaces(cmd.Context())
		if err != nil {
			return err
		}
		for _, ns := range namespaces {
			fmt.Fprintln(cmd.OutOrStdout(), ns)
		}
		return nil
	},
}

var storageInspectCmd = &cobra.Command{
	Use:   "inspect <session>",
	Short: "Show the items of a storage session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		redact, _ := cmd.Flags().GetStringSlice("redact")
		backend, err := cli.OpenStorage(cfg, args[0], cli.StorageOptions{Redact: redact})
		if err != nil {
			return err
		}
		defer backend.Close()

		keys, values, err := cli.Snapshot(cmd.Context(), backend.Storage)
		if err != nil {
			return err
		}
		out, err := tui.NewRenderer()(tui.StorageReport(args[0], keys, values))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var storageRmCmd = &cobra.Command{
	Use:   "rm <session>...",
	Short: "Delete storage sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		for _, ns := range args {
			backend, err := cli.OpenStorage(cfg, ns, cli.StorageOptions{})
			if err != nil {
				return err
			}
			err = backend.Storage.Clear(cmd.Context())
			_ = backend.Close()
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", ns, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.Status(true, "deleted"), ns)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
	storageCmd.AddCommand(storageLsCmd, storageInspectCmd, storageRmCmd)
	storageInspectCmd.Flags().StringSlice("redact", nil, "Mask values of keys matching these regular expressions")
}
