package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/workflows"
)

var editEditor string

func init() {
	editCmd.Flags().StringVar(&editEditor, "editor", "", "editor command (defaults to $VISUAL, then $EDITOR, then vi)")
}

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Decrypts a secret into your editor and re-encrypts it afterwards",
	Long: `Opens the secret's plaintext in your editor. When the editor exits
successfully, the edited content is re-encrypted in place. If the editor or
re-encryption fails, the secret is restored to exactly its previous state.
Editing a path with no existing secret creates it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// No spinner: the editor owns the terminal while it runs.
		result, err := workflows.Edit(cmd.Context(), workflows.EditOptions{
			Path:   args[0],
			Editor: editEditor,
		})
		if err != nil {
			return err
		}

		verb := "Updated"
		if result.Created {
			verb = "Created"
		}
		cmd.Println(ui.Success.Sprint("✓") + " " + verb + " secret " + ui.Path.Sprint(result.Path))
		return nil
	},
}
