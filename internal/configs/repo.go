package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// RepoConfig is the persistent repository configuration stored in crypt.cfg.
type RepoConfig struct {
	Repo Repo `toml:"repo"`
	Keys Keys `toml:"keys"`
}

// Repo identifies the repository.
type Repo struct {
	ID        string    `toml:"id"`
	CreatedAt time.Time `toml:"created_at"`
}

// Keys holds the recipient configuration. Recipients is a comma-separated,
// ordered list of recipient names, written once at initialization.
type Keys struct {
	Recipients string `toml:"recipients"`
}

// NewRepoConfig builds the configuration written at initialization time.
func NewRepoConfig(recipients []string) *RepoConfig {
	cfg := &RepoConfig{
		Repo: Repo{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		},
	}
	cfg.SetRecipients(recipients)
	return cfg
}

// RecipientList returns the ordered recipient names, with surrounding
// whitespace trimmed and empty entries dropped.
func (c *RepoConfig) RecipientList() []string {
	var names []string
	for _, name := range strings.Split(c.Keys.Recipients, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SetRecipients stores the recipient names as a comma-separated list,
// preserving order.
func (c *RepoConfig) SetRecipients(names []string) {
	c.Keys.Recipients = strings.Join(names, ",")
}

// LoadRepoConfig reads crypt.cfg for the repository in settings.
// Returns ErrRepoNotInitialized if the file does not exist and
// ErrInvalidConfig if it cannot be parsed.
func LoadRepoConfig(settings *Settings) (*RepoConfig, error) {
	var cfg RepoConfig
	if err := LoadTOML(settings.ConfigPath, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ErrRepoNotInitialized
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}
	if len(cfg.RecipientList()) == 0 {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, kerrors.ErrNoRecipients)
	}
	return &cfg, nil
}

// SaveRepoConfig writes crypt.cfg for the repository in settings.
func SaveRepoConfig(settings *Settings, cfg *RepoConfig) error {
	return SaveTOML(settings.ConfigPath, cfg)
}
