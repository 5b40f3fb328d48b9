package workflows

import (
	"context"

	"github.com/cryptsh/crypt/internal/configs"
	"github.com/cryptsh/crypt/internal/secrets"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Pattern optionally filters logical paths with a glob (e.g. "aws/**").
	Pattern string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// ListResult contains the repository listing.
type ListResult struct {
	// Entries are the stored secrets, sorted ascending by logical path.
	Entries []secrets.Entry
}

// List enumerates the repository's secrets.
//
// Listing reports metadata only, never secret content, so it bypasses the
// authorization gate and works even for callers who cannot decrypt. A
// missing repository yields an empty listing.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	settings, err := resolveSettings(opts.Settings)
	if err != nil {
		return nil, err
	}

	resolver := secrets.Resolver{RepoPath: settings.RepoPath}

	var entries []secrets.Entry
	if opts.Pattern != "" {
		entries, err = resolver.Glob(opts.Pattern)
	} else {
		entries, err = resolver.Enumerate()
	}
	if err != nil {
		return nil, err
	}

	return &ListResult{Entries: entries}, nil
}
