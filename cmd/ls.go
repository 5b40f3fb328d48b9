package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/workflows"
)

var lsLong bool

func init() {
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "also show size and last-modified time")
}

var lsCmd = &cobra.Command{
	Use:   "ls [pattern]",
	Short: "Lists stored secrets",
	Long: `Lists the repository's secrets sorted by logical path, optionally filtered
by a glob pattern such as "aws/**". Listing reports metadata only and works
even for callers who cannot decrypt the repository.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workflows.ListOptions{}
		if len(args) == 1 {
			opts.Pattern = args[0]
		}

		result, err := workflows.List(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if !lsLong {
			for _, entry := range result.Entries {
				fmt.Println(entry.LogicalPath)
			}
			return nil
		}

		width := 0
		for _, entry := range result.Entries {
			if len(entry.LogicalPath) > width {
				width = len(entry.LogicalPath)
			}
		}
		for _, entry := range result.Entries {
			fmt.Printf("%-*s  %8d  %s\n", width, entry.LogicalPath, entry.Size,
				entry.ModTime.Format(time.RFC3339))
		}
		return nil
	},
}
