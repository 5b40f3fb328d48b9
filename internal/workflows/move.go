package workflows

import (
	"context"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
)

// MoveOptions configures the move workflow.
type MoveOptions struct {
	// From is the logical path of the existing secret.
	From string

	// To is the logical destination path.
	To string

	// Force replaces an existing destination secret instead of refusing.
	Force bool

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// MoveResult contains the outcome of a move operation.
type MoveResult struct {
	From string
	To   string
}

// Move renames a secret. The ciphertext is moved unchanged; content is
// never re-encrypted. An existing destination is refused with
// ErrSecretExists unless Force is set, so a move is never silently lossy.
//
// Returns ErrSecretNotFound if the source does not exist.
func Move(ctx context.Context, opts MoveOptions) (*MoveResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	if err := s.store.Rename(opts.From, opts.To, opts.Force); err != nil {
		return nil, err
	}

	entry := audit.New(s.settings, "mv")
	entry.From = opts.From
	entry.To = opts.To
	audit.Log(s.settings, entry)

	return &MoveResult{From: opts.From, To: opts.To}, nil
}
