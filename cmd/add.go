package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/utils"
	"github.com/cryptsh/crypt/internal/workflows"
)

var addCmd = &cobra.Command{
	Use:   "add <path> <source|->",
	Short: "Encrypts a secret and stores it at a logical path",
	Long: `Reads plaintext from a file, or from stdin when the source is "-", encrypts
it to the repository's recipient set, and stores it at the given logical
path. An existing secret at the same path is replaced.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.AddOptions{Path: args[0]}

		if args[1] == "-" {
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read secret from stdin: %v", err)
			}
			opts.Data = data
		} else {
			opts.SourcePath = args[1]
		}

		spinner, cleanup := startSpinner("Encrypting secret...")
		defer cleanup()

		result, err := workflows.Add(cmd.Context(), opts)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to add " + ui.Path.Sprint(args[0])
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added secret " + ui.Path.Sprint(result.Path)
		return nil
	},
}
