package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().Bool("yes", false, "confirm the reset")
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all data as a JSON snapshot",
	Long:  `Write a snapshot of all stored slices to the given file, or stdout when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, _, _, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		doc, err := store.ExportData()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if len(args) == 0 {
			fmt.Fprintln(os.Stdout, doc)
			return nil
		}
		if err := os.WriteFile(args[0], []byte(doc+"\n"), 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Exported to %s\n", args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a JSON snapshot, replacing stored slices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}

		store, _, _, _, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		if !store.ImportData(string(data)) {
			return fmt.Errorf("invalid snapshot document: %s", args[0])
		}
		fmt.Fprintf(os.Stdout, "Imported %s\n", args[0])
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and start over with a fresh profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("reset erases all chores, transactions, and achievements; re-run with --yes to confirm")
		}

		store, _, _, _, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		store.Reset()
		fmt.Fprintln(os.Stdout, "All data reset.")
		return nil
	},
}
