package workflows

import (
	"context"
	"fmt"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
	kerrors "github.com/cryptsh/crypt/internal/errors"
	"github.com/cryptsh/crypt/internal/ui"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Path is the logical secret path to remove.
	Path string

	// Force skips the interactive confirmation.
	Force bool

	// Confirm asks the user a yes/no question. Required when Force is
	// false; the CLI wires this to a stdin prompt.
	Confirm func(prompt string) (bool, error)

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Path is the logical path that was removed.
	Path string
}

// Remove deletes the secret at the given logical path.
//
// Unless Force is set, the user is asked to confirm; any answer other than
// an affirmative aborts with ErrAborted and the ciphertext is left intact.
// Returns ErrSecretNotFound if no ciphertext exists.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	if !s.store.Exists(opts.Path) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, opts.Path)
	}

	if !opts.Force {
		if opts.Confirm == nil {
			return nil, fmt.Errorf("%w: confirmation unavailable (use --force)", kerrors.ErrAborted)
		}
		ok, err := opts.Confirm(fmt.Sprintf("Remove secret %s?", ui.Path.Sprint(opts.Path)))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s not removed", kerrors.ErrAborted, opts.Path)
		}
	}

	if err := s.store.Remove(opts.Path); err != nil {
		return nil, err
	}

	entry := audit.New(s.settings, "rm")
	entry.Path = opts.Path
	audit.Log(s.settings, entry)

	return &RemoveResult{Path: opts.Path}, nil
}
