package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/workflows"
)

var initRecipients []string

func init() {
	initCmd.Flags().StringArrayVarP(&initRecipients, "recipient", "r", nil,
		"recipient name allowed to decrypt this repository (repeatable; defaults to the invoking identity)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes a new secret repository",
	Long: `Creates the repository layout, copies the recipients' public keys into the
repository, and encrypts the authorization marker to the recipient set.

The recipient list is persisted once and treated as immutable: changing it
later does not re-encrypt existing secrets. Keys are provisioned externally;
init expects each recipient's public key at <keys dir>/<name>.pub.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Initializing repository...")
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Recipients: initRecipients,
		})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to initialize repository"
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Initialized repository at " +
			ui.Path.Sprint(result.RootPath) + "\n" +
			ui.Info.Sprint("→") + " Recipients: " +
			ui.Highlight.Sprint(strings.Join(result.Recipients, ", "))
		return nil
	},
}
