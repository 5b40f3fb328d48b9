package workflows

import (
	"crypto/rsa"
	"fmt"

	"github.com/cryptsh/crypt/internal/configs"
	kerrors "github.com/cryptsh/crypt/internal/errors"
	"github.com/cryptsh/crypt/internal/secrets"
)

// ExitError carries a specific process exit status from a workflow to
// main(). It is used by Exec, whose invocation must exit with the child
// process's own status.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// session bundles everything an authorized operation needs: resolved
// settings, the repository configuration, and a store wired with the
// recipient set and the caller's private key.
type session struct {
	settings *configs.Settings
	config   *configs.RepoConfig
	identity *rsa.PrivateKey
	store    *secrets.Store
}

// resolveSettings returns the caller-provided settings or loads them from
// the environment.
func resolveSettings(settings *configs.Settings) (*configs.Settings, error) {
	if settings != nil {
		return settings, nil
	}
	return configs.Load()
}

// openSession loads the repository configuration, runs the authorization
// check, and builds the secret store. Every command except init and ls
// passes through here, so an unauthorized caller is rejected once, early,
// before any side effect.
func openSession(settings *configs.Settings) (*session, error) {
	settings, err := resolveSettings(settings)
	if err != nil {
		return nil, err
	}

	cfg, err := configs.LoadRepoConfig(settings)
	if err != nil {
		return nil, err
	}

	// A missing private key is not an error here; the gate reports it as
	// a plain authorization failure.
	userKeys := secrets.Keyring{Dir: settings.UserKeysPath}
	identity, _ := userKeys.PrivateKey(settings.Identity)

	if secrets.CheckAccess(settings, identity) != secrets.Authorized {
		return nil, kerrors.ErrUnauthorized
	}

	repoKeys := secrets.Keyring{Dir: settings.PublicKeysPath}
	recipients, err := repoKeys.PublicKeys(cfg.RecipientList())
	if err != nil {
		return nil, err
	}

	resolver := secrets.Resolver{RepoPath: settings.RepoPath}
	return &session{
		settings: settings,
		config:   cfg,
		identity: identity,
		store:    secrets.NewStore(resolver, recipients, identity),
	}, nil
}
