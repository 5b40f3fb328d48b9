package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logIdentity  string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logIdentity, "identity", "", "filter by invoking identity")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation name (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Views the repository audit log",
	Long: `Displays the audit log of repository operations: who did what, when, and to
which secret. The log holds metadata only, never secret content.

Examples:
  crypt log                      # full log, oldest first
  crypt log -n 10                # last 10 entries
  crypt log --reverse            # most recent first
  crypt log --identity alice     # filter by identity
  crypt log --operation add,rm   # filter by operation
  crypt log --since 2026-01-01   # filter by date
  crypt log --json               # JSON output`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Identity:   logIdentity,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			return err
		}

		Logger.Debugf("Showing %d of %d audit entries", len(result.Entries), result.TotalEntries)

		if len(result.Entries) == 0 {
			if result.TotalEntries == 0 {
				fmt.Println("No audit log entries found.")
			} else {
				fmt.Println("No audit log entries found matching the filters.")
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal entries to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, e := range result.Entries {
			fmt.Printf("%-19s  %-12s  %-6s  %s\n",
				workflows.FormatDateTime(e.Timestamp), e.Identity, e.Operation,
				workflows.FormatDetails(e))
		}
		return nil
	},
}
