package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/ui"
	"github.com/cryptsh/crypt/internal/workflows"
)

var (
	pwgenOutput string
	pwgenLength int
	pwgenChars  []string
)

func init() {
	pwgenCmd.Flags().StringVarP(&pwgenOutput, "output", "o", "",
		"logical path to store the generated password at")
	pwgenCmd.Flags().IntVarP(&pwgenLength, "length", "n", workflows.DefaultPasswordLength,
		"password length")
	pwgenCmd.Flags().StringArrayVarP(&pwgenChars, "chars", "c", nil,
		"character class to draw from: alphanum, punc or space (repeatable; defaults to alphanum)")
}

var pwgenCmd = &cobra.Command{
	Use:   "pwgen [--output path] [--length N] [--chars class]...",
	Short: "Generates a random password, optionally storing it as a secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Pwgen(cmd.Context(), workflows.PwgenOptions{
			Path:    pwgenOutput,
			Length:  pwgenLength,
			Classes: pwgenChars,
		})
		if err != nil {
			return err
		}

		if result.Stored {
			cmd.Println(ui.Success.Sprint("✓") + " Stored generated password at " + ui.Path.Sprint(result.Path))
			return nil
		}

		// Plain stdout so the password can be piped.
		fmt.Println(result.Password)
		return nil
	},
}
