package configs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

func testSettings(t *testing.T) *Settings {
	t.Helper()
	root := t.TempDir()
	return &Settings{
		RootPath:   root,
		ConfigPath: filepath.Join(root, ConfigFileName),
	}
}

func TestRepoConfig_RoundTrip(t *testing.T) {
	settings := testSettings(t)

	cfg := NewRepoConfig([]string{"alice", "bob"})
	if err := SaveRepoConfig(settings, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadRepoConfig(settings)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.Repo.ID != cfg.Repo.ID {
		t.Errorf("Expected ID %q, got: %q", cfg.Repo.ID, loaded.Repo.ID)
	}
	if !reflect.DeepEqual(loaded.RecipientList(), []string{"alice", "bob"}) {
		t.Errorf("Expected recipients in order, got: %v", loaded.RecipientList())
	}
}

func TestLoadRepoConfig_Missing(t *testing.T) {
	_, err := LoadRepoConfig(testSettings(t))
	if !errors.Is(err, kerrors.ErrRepoNotInitialized) {
		t.Errorf("Expected ErrRepoNotInitialized, got: %v", err)
	}
}

func TestLoadRepoConfig_Malformed(t *testing.T) {
	settings := testSettings(t)
	if err := os.WriteFile(settings.ConfigPath, []byte("not = [valid\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadRepoConfig(settings)
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoadRepoConfig_NoRecipients(t *testing.T) {
	settings := testSettings(t)
	if err := os.WriteFile(settings.ConfigPath, []byte("[repo]\nid = \"x\"\n\n[keys]\nrecipients = \"\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadRepoConfig(settings)
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestRecipientList_TrimsAndDropsEmpty(t *testing.T) {
	cfg := &RepoConfig{}
	cfg.Keys.Recipients = " alice , , bob ,"

	if got := cfg.RecipientList(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Errorf("Expected trimmed recipients, got: %v", got)
	}
}

func TestSettingsLoad_EnvOverrides(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")
	keys := filepath.Join(t.TempDir(), "ids")
	t.Setenv(EnvRoot, root)
	t.Setenv(EnvKeys, keys)
	t.Setenv(EnvIdentity, "carol")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if settings.RootPath != root {
		t.Errorf("Expected root %q, got: %q", root, settings.RootPath)
	}
	if settings.RepoPath != filepath.Join(root, RepoDirName) {
		t.Errorf("Unexpected repo path: %q", settings.RepoPath)
	}
	if settings.MarkerPath != filepath.Join(root, MarkerFileName) {
		t.Errorf("Unexpected marker path: %q", settings.MarkerPath)
	}
	if settings.UserKeysPath != keys {
		t.Errorf("Expected user keys %q, got: %q", keys, settings.UserKeysPath)
	}
	if settings.Identity != "carol" {
		t.Errorf("Expected identity carol, got: %q", settings.Identity)
	}
	if settings.AuditPath() != filepath.Join(root, AuditFileName) {
		t.Errorf("Unexpected audit path: %q", settings.AuditPath())
	}
}

func TestSettingsLoad_DefaultRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("default paths resolve through HOME")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvKeys, "")
	t.Setenv(EnvIdentity, "carol")
	t.Setenv("XDG_DATA_HOME", "")

	settings, err := Load()
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if settings.RootPath != filepath.Join(home, ".crypt") {
		t.Errorf("Expected default root under home, got: %q", settings.RootPath)
	}
	if settings.UserKeysPath != filepath.Join(home, ".local", "share", "crypt", "keys") {
		t.Errorf("Expected default user keys path, got: %q", settings.UserKeysPath)
	}
}
