package workflows

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/cryptsh/crypt/internal/configs"
)

// ClipOptions configures the clip workflow.
type ClipOptions struct {
	// Path is the logical secret path to copy.
	Path string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// ClipResult contains the outcome of a clip operation.
type ClipResult struct {
	// Path is the logical path that was copied.
	Path string
}

// Clip decrypts the secret at the given logical path and places its content
// on the OS clipboard.
func Clip(ctx context.Context, opts ClipOptions) (*ClipResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.store.Read(opts.Path)
	if err != nil {
		return nil, err
	}

	if err := clipboard.WriteAll(string(plaintext)); err != nil {
		return nil, fmt.Errorf("writing to clipboard: %w", err)
	}

	return &ClipResult{Path: opts.Path}, nil
}
