package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/workflows"
)

var mvForce bool

func init() {
	mvCmd.Flags().BoolVarP(&mvForce, "force", "f", false, "replace an existing secret at the destination")
}

var mvCmd = &cobra.Command{
	Use:   "mv <from> <to>",
	Short: "Renames a secret",
	Long: `Moves a secret's ciphertext to a new logical path. Content is moved
unchanged and never re-encrypted. If a secret already exists at the
destination, the move is refused unless --force is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Move(cmd.Context(), workflows.MoveOptions{
			From:  args[0],
			To:    args[1],
			Force: mvForce,
		})
		if err != nil {
			return err
		}

		cmd.Println(ui.Success.Sprint("✓") + " Moved " + ui.Path.Sprint(result.From) +
			" " + ui.Info.Sprint("→") + " " + ui.Path.Sprint(result.To))
		return nil
	},
}
