package workflows

import (
	"context"
	"io"
	"strings"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
	"github.com/cryptsh/crypt/internal/materialize"
)

// ExecOptions configures the exec workflow.
type ExecOptions struct {
	// EnvPaths lists secrets parsed into the child's environment, in order.
	EnvPaths []string

	// Links lists secrets decrypted to filesystem paths for the duration
	// of the child process.
	Links []materialize.Link

	// Argv is the child command and its arguments.
	Argv []string

	// Stdin, Stdout and Stderr are attached to the child. They default to
	// the invoking process's standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// ExecResult contains the outcome of an exec operation.
type ExecResult struct {
	// ExitCode is the invocation's exit status.
	ExitCode int
}

// Exec materializes the requested secrets, runs the child command, and
// guarantees teardown of every linked plaintext file on every exit path.
//
// The returned error is an *ExitError whenever the invocation must exit
// non-zero: it carries the child's own exit status, or the engine's fixed
// status for decryption failures and interruptions.
func Exec(ctx context.Context, opts ExecOptions) (*ExecResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	engine := &materialize.Engine{Store: s.store}
	code, err := engine.Run(materialize.Request{
		EnvPaths: opts.EnvPaths,
		Links:    opts.Links,
		Argv:     opts.Argv,
		Stdin:    opts.Stdin,
		Stdout:   opts.Stdout,
		Stderr:   opts.Stderr,
	})

	entry := audit.New(s.settings, "exec")
	entry.Command = strings.Join(opts.Argv, " ")
	entry.Secrets = append(append([]string{}, opts.EnvPaths...), linkPaths(opts.Links)...)
	audit.Log(s.settings, entry)

	result := &ExecResult{ExitCode: code}
	if err != nil {
		return result, &ExitError{Code: code, Err: err}
	}
	if code != 0 {
		// The child failed on its own; its status is propagated without
		// an extra message.
		return result, &ExitError{Code: code}
	}
	return result, nil
}

func linkPaths(links []materialize.Link) []string {
	paths := make([]string, 0, len(links))
	for _, link := range links {
		paths = append(paths, link.LogicalPath)
	}
	return paths
}
