package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptsh/crypt/internal/materialize"
	"github.com/cryptsh/crypt/internal/workflows"
)

var (
	execEnvPaths []string
	execLinks    []materialize.Link
)

func init() {
	execCmd.Flags().StringArrayVar(&execEnvPaths, "env", nil,
		"secret whose [export ]KEY=VALUE lines are injected into the child's environment (repeatable)")
	execCmd.Flags().Var(&linkValue{&execLinks}, "link",
		"secret decrypted to a filesystem path for the duration of the command (repeatable)")
}

var execCmd = &cobra.Command{
	Use:   "exec [--env path]... [--link secret:path]... -- <cmd...>",
	Short: "Runs a command with secrets materialized for its duration",
	Long: `Decrypts the requested secrets into the child command's environment and
into temporary files, runs the command, and removes every materialized file
afterwards, on every exit path.

The invocation exits with the child's own exit status. A decryption failure
aborts before the command starts; an interrupting signal terminates the
command and still removes all materialized files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := args
		if at := cmd.ArgsLenAtDash(); at > 0 {
			return fmt.Errorf("unexpected arguments before --: %v", args[:at])
		}

		Logger.Debugf("Running %v with %d env secrets and %d links", argv, len(execEnvPaths), len(execLinks))

		_, err := workflows.Exec(cmd.Context(), workflows.ExecOptions{
			EnvPaths: execEnvPaths,
			Links:    execLinks,
			Argv:     argv,
		})
		return err
	},
}
