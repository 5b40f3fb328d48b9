package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/utils"
	"github.com/cryptsh/crypt/internal/workflows"
)

var rmForce bool

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "remove without asking for confirmation")
}

var rmCmd = &cobra.Command{
	Use:   "rm <path> [--force]",
	Short: "Removes a secret from the repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.RemoveOptions{
			Path:  args[0],
			Force: rmForce,
		}
		// Only prompt when stdin is a terminal; a scripted invocation
		// without --force aborts instead of hanging on a read.
		if utils.IsTerminal() {
			opts.Confirm = utils.Confirm
		}

		result, err := workflows.Remove(cmd.Context(), opts)
		if err != nil {
			return err
		}

		Logger.Infof("Removed ciphertext for %s", result.Path)
		cmd.Println(ui.Success.Sprint("✓") + " Removed secret " + ui.Path.Sprint(result.Path))
		return nil
	},
}
