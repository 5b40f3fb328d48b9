package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
)

// AddOptions configures the add workflow.
type AddOptions struct {
	// Path is the logical secret path to store at.
	Path string

	// Data is the plaintext to store. If nil, SourcePath is read instead.
	Data []byte

	// SourcePath is a file to read the plaintext from when Data is nil.
	SourcePath string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	// Path is the logical path the secret was stored at.
	Path string

	// CipherPath is the ciphertext file that was written.
	CipherPath string
}

// Add encrypts plaintext to the repository's recipient set and stores it at
// the given logical path.
//
// Returns ErrUnauthorized if the caller cannot decrypt the repository and
// ErrEncryptFailed if the encryption capability rejects the operation; in
// both cases nothing is written.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	data := opts.Data
	if data == nil {
		data, err = os.ReadFile(opts.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.SourcePath, err)
		}
	}

	if err := s.store.Add(opts.Path, data); err != nil {
		return nil, err
	}

	entry := audit.New(s.settings, "add")
	entry.Path = opts.Path
	audit.Log(s.settings, entry)

	return &AddResult{
		Path:       opts.Path,
		CipherPath: s.store.Resolver().Resolve(opts.Path),
	}, nil
}
