package cmd

import (
	logger "github.com/cryptsh/crypt/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "crypt",
		Short: "crypt - A local encrypted secret store.",
		Long: `crypt maps logical secret paths to files encrypted at rest, decryptable
only by the repository's configured recipients ("viewers"). Secrets are never
stored in cleartext; plaintext exists only transiently, in memory, in a child
process's environment, or in files that are guaranteed to be removed.

Typical usage:

  crypt init
  crypt add aws/creds -          # read plaintext from stdin
  crypt exec --env aws/creds -- terraform apply
  crypt edit db/password

Run 'crypt help <command>' for details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing crypt with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(catCmd)
	RootCmd.AddCommand(clipCmd)
	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(mvCmd)
	RootCmd.AddCommand(execCmd)
	RootCmd.AddCommand(pwgenCmd)
	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(logCmd)
}
