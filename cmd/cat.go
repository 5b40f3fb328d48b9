package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/workflows"
)

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Decrypts a secret and writes it to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// No spinner here: stdout is the secret's plaintext and may be piped.
		result, err := workflows.Cat(cmd.Context(), workflows.CatOptions{Path: args[0]})
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(result.Plaintext)
		return err
	},
}
