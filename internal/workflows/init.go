package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
	kerrors "github.com/cryptsh/crypt/internal/errors"
	"github.com/cryptsh/crypt/internal/secrets"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Recipients are the identity names allowed to decrypt this
	// repository. If empty, the invoking identity is the sole recipient.
	Recipients []string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// RootPath is the repository root that was created.
	RootPath string

	// RepoID is the unique identifier assigned to the repository.
	RepoID string

	// Recipients are the persisted recipient names, in order.
	Recipients []string
}

// Init initializes a new crypt repository.
//
// It creates the root directory layout, copies the recipients' public keys
// into the repository, encrypts the authorization marker to the recipient
// set, and persists the repository configuration. The recipient list is
// immutable for the lifetime of the repository.
//
// Returns ErrRepoAlreadyInitialized if crypt.cfg already exists,
// ErrRootNotDirectory if the root path exists but is a regular file, and
// ErrKeyNotFound if a recipient's public key cannot be located.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	settings, err := resolveSettings(opts.Settings)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(settings.RootPath); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrRootNotDirectory, settings.RootPath)
	}
	if _, err := os.Stat(settings.ConfigPath); err == nil {
		return nil, kerrors.ErrRepoAlreadyInitialized
	}

	recipients := opts.Recipients
	if len(recipients) == 0 {
		recipients = []string{settings.Identity}
	}

	// All recipient public keys must be loadable before anything is
	// created on disk.
	userKeys := secrets.Keyring{Dir: settings.UserKeysPath}
	publicKeys, err := userKeys.PublicKeys(recipients)
	if err != nil {
		return nil, err
	}

	createdRoot := false
	if _, err := os.Stat(settings.RootPath); os.IsNotExist(err) {
		createdRoot = true
	}

	cleanupNeeded := false
	defer func() {
		if cleanupNeeded && createdRoot {
			os.RemoveAll(settings.RootPath)
		}
	}()

	if err := os.MkdirAll(settings.RepoPath, 0700); err != nil {
		return nil, fmt.Errorf("creating repository directory: %w", err)
	}
	cleanupNeeded = true
	if err := os.MkdirAll(settings.PublicKeysPath, 0700); err != nil {
		return nil, fmt.Errorf("creating keys directory: %w", err)
	}

	for _, name := range recipients {
		keyData, err := os.ReadFile(userKeys.PublicKeyPath(name))
		if err != nil {
			return nil, fmt.Errorf("reading public key for %s: %w", name, err)
		}
		destPath := filepath.Join(settings.PublicKeysPath, name+".pub")
		if err := os.WriteFile(destPath, keyData, 0600); err != nil {
			return nil, fmt.Errorf("copying public key for %s: %w", name, err)
		}
	}

	if err := secrets.WriteMarker(settings, publicKeys); err != nil {
		return nil, err
	}

	cfg := configs.NewRepoConfig(recipients)
	if err := configs.SaveRepoConfig(settings, cfg); err != nil {
		return nil, fmt.Errorf("saving repository config: %w", err)
	}
	cleanupNeeded = false

	audit.Log(settings, audit.New(settings, "init"))

	return &InitResult{
		RootPath:   settings.RootPath,
		RepoID:     cfg.Repo.ID,
		Recipients: recipients,
	}, nil
}
