package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/workflows"
)

var clipCmd = &cobra.Command{
	Use:   "clip <path>",
	Short: "Decrypts a secret and copies it to the OS clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Copying secret...")
		defer cleanup()

		result, err := workflows.Clip(cmd.Context(), workflows.ClipOptions{Path: args[0]})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to copy " + ui.Path.Sprint(args[0])
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Copied " + ui.Path.Sprint(result.Path) + " to clipboard"
		return nil
	},
}
