package workflows

import (
	"context"
	"os"
	"strings"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
	"github.com/cryptsh/crypt/internal/secrets"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	// Path is the logical secret path to edit.
	Path string

	// Editor overrides the VISUAL/EDITOR environment variables. The value
	// is split on whitespace into the editor argv.
	Editor string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// EditResult contains the outcome of an edit operation.
type EditResult struct {
	// Path is the logical path that was edited.
	Path string

	// Created reports whether the secret was newly created by this edit.
	Created bool
}

// Edit runs the decrypt-edit-reencrypt transaction for one secret.
//
// A pre-existing secret's ciphertext stays in place while the editor runs
// and is kept aside as a backup only during the re-encrypting commit; any
// failure restores it, so the secret is left exactly as it was before the
// edit attempt. Returns ErrEditorFailed when the editor exits non-zero.
func Edit(ctx context.Context, opts EditOptions) (*EditResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	created := !s.store.Exists(opts.Path)

	tx := &secrets.Transaction{
		Store:       s.store,
		LogicalPath: opts.Path,
		Editor:      editorArgv(opts.Editor),
	}
	if err := tx.Run(); err != nil {
		return nil, err
	}

	entry := audit.New(s.settings, "edit")
	entry.Path = opts.Path
	audit.Log(s.settings, entry)

	return &EditResult{Path: opts.Path, Created: created}, nil
}

// editorArgv picks the editor command: the explicit override, then VISUAL,
// then EDITOR, then vi.
func editorArgv(override string) []string {
	for _, value := range []string{override, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if fields := strings.Fields(value); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}
