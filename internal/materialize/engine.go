package materialize

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	kerrors "github.com/cryptsh/crypt/internal/errors"
	"github.com/cryptsh/crypt/internal/secrets"
)

// Exit statuses for outcomes that do not come from the child process.
const (
	// ExitDecryptFailure is reported when injection or linking fails
	// before or instead of the child running.
	ExitDecryptFailure = 1

	// ExitInterrupted is reported when a signal terminated the run.
	ExitInterrupted = 130
)

// Link names one secret to be decrypted to a filesystem path for the
// duration of the child process.
type Link struct {
	// LogicalPath is the secret to decrypt.
	LogicalPath string

	// Dest is the filesystem path receiving the plaintext.
	Dest string
}

// Request describes one exec invocation.
type Request struct {
	// EnvPaths lists secrets whose contents are parsed into the child's
	// environment, in order; later secrets overwrite earlier keys.
	EnvPaths []string

	// Links lists secrets decrypted to filesystem paths.
	Links []Link

	// Argv is the child command and its arguments.
	Argv []string

	// Stdin, Stdout and Stderr are attached to the child.
	// They default to the invoking process's standard streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Engine materializes secrets around one child process invocation.
type Engine struct {
	// Store provides decryption of requested secrets.
	Store *secrets.Store
}

// Run drives one invocation: inject environment, materialize links, run the
// child, tear down. Environment injection completes fully before linking,
// and linking completes fully before the child starts, so no child runs
// while a decrypt step could still fail. The returned status is the child's
// exit status, ExitDecryptFailure on a decryption short-circuit, or
// ExitInterrupted when a signal ended the run.
func (e *Engine) Run(req Request) (int, error) {
	if len(req.Argv) == 0 {
		return ExitDecryptFailure, fmt.Errorf("no command to run")
	}

	env := baseEnv(os.Environ())
	for _, logical := range req.EnvPaths {
		plaintext, err := e.Store.Read(logical)
		if err != nil {
			return ExitDecryptFailure, err
		}
		parseEnv(plaintext, env)
	}

	guard := &teardown{}
	defer guard.release()

	for _, link := range req.Links {
		plaintext, err := e.Store.Read(link.LogicalPath)
		if err != nil {
			return ExitDecryptFailure, err
		}
		// Register before writing so a partial write is still removed.
		guard.add(link.Dest)
		if err := os.WriteFile(link.Dest, plaintext, 0600); err != nil {
			return ExitDecryptFailure, fmt.Errorf("materializing %s: %w", link.Dest, err)
		}
		if err := os.Chmod(link.Dest, 0400); err != nil {
			return ExitDecryptFailure, fmt.Errorf("restricting %s: %w", link.Dest, err)
		}
	}

	return e.runChild(req, flattenEnv(env))
}

// runChild spawns the command and blocks until it exits or a signal
// arrives. On a signal the child is forwarded the signal, waited for, and
// the run reported as interrupted.
func (e *Engine) runChild(req Request, env []string) (int, error) {
	cmd := exec.Command(req.Argv[0], req.Argv[1:]...)
	cmd.Env = env
	cmd.Stdin = req.Stdin
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := cmd.Start(); err != nil {
		return ExitDecryptFailure, fmt.Errorf("starting %s: %w", req.Argv[0], err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err == nil {
			return 0, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code >= 0 {
				return code, nil
			}
			// Child was killed by a signal it received directly.
			return ExitInterrupted, fmt.Errorf("%w: %v", kerrors.ErrInterrupted, exitErr)
		}
		return ExitDecryptFailure, fmt.Errorf("running %s: %w", req.Argv[0], err)
	case sig := <-sigCh:
		_ = cmd.Process.Signal(sig)
		<-done
		return ExitInterrupted, fmt.Errorf("%w: %v", kerrors.ErrInterrupted, sig)
	}
}
