package configs

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Environment variables recognized by crypt.
const (
	EnvRoot     = "CRYPT_ROOT"
	EnvKeys     = "CRYPT_KEYS"
	EnvIdentity = "CRYPT_IDENTITY"
)

// Names of the fixed entries under the repository root.
const (
	RepoDirName       = "repo"
	MarkerFileName    = "marker"
	ConfigFileName    = "crypt.cfg"
	PublicKeysDirName = "keys"
	AuditFileName     = "audit.jsonl"
)

// Settings hold the resolved paths and identity for one invocation.
// They are immutable after Load.
type Settings struct {
	// RootPath is the repository root directory.
	RootPath string

	// RepoPath is the directory holding ciphertext files.
	RepoPath string

	// ConfigPath is the location of crypt.cfg.
	ConfigPath string

	// MarkerPath is the location of the authorization marker ciphertext.
	MarkerPath string

	// PublicKeysPath is the directory holding recipient public keys.
	PublicKeysPath string

	// UserKeysPath is the invoking user's key directory.
	UserKeysPath string

	// Identity is the invoking identity's recipient name.
	Identity string
}

// Load resolves settings from the environment. It never touches the disk.
func Load() (*Settings, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		root = filepath.Join(homeDir, ".crypt")
	}

	userKeys := os.Getenv(EnvKeys)
	if userKeys == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			dataDir = filepath.Join(homeDir, ".local", "share")
		}
		userKeys = filepath.Join(dataDir, "crypt", "keys")
	}

	identity := os.Getenv(EnvIdentity)
	if identity == "" {
		current, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("getting current user: %w", err)
		}
		identity = current.Username
	}

	return &Settings{
		RootPath:       root,
		RepoPath:       filepath.Join(root, RepoDirName),
		ConfigPath:     filepath.Join(root, ConfigFileName),
		MarkerPath:     filepath.Join(root, MarkerFileName),
		PublicKeysPath: filepath.Join(root, PublicKeysDirName),
		UserKeysPath:   userKeys,
		Identity:       identity,
	}, nil
}

// AuditPath returns the location of the repository audit log.
func (s *Settings) AuditPath() string {
	return filepath.Join(s.RootPath, AuditFileName)
}
