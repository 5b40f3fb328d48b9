package workflows

import (
	"context"

	"github.com/cryptsh/crypt/internal/configs"
)

// CatOptions configures the cat workflow.
type CatOptions struct {
	// Path is the logical secret path to read.
	Path string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// CatResult contains the decrypted secret.
type CatResult struct {
	// Plaintext is the secret's content.
	Plaintext []byte
}

// Cat decrypts and returns the secret at the given logical path.
//
// Returns ErrUnauthorized if the caller cannot decrypt the repository,
// ErrSecretNotFound if no ciphertext exists, and ErrDecryptFailed if the
// caller's key cannot decrypt it.
func Cat(ctx context.Context, opts CatOptions) (*CatResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.store.Read(opts.Path)
	if err != nil {
		return nil, err
	}

	return &CatResult{Plaintext: plaintext}, nil
}
