package secrets

import (
	"bytes"
	"crypto/rsa"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// testStore builds a store over a temp repository with one recipient.
func testStore(t *testing.T) (*Store, *rsa.PrivateKey) {
	t.Helper()
	key := testKey(t)
	resolver := Resolver{RepoPath: filepath.Join(t.TempDir(), "repo")}
	return NewStore(resolver, []*rsa.PublicKey{&key.PublicKey}, key), key
}

func TestStore_AddRead_RoundTrip(t *testing.T) {
	store, _ := testStore(t)
	plaintext := []byte("export K=V\n")

	if err := store.Add("aws/creds", plaintext); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := store.Read("aws/creds")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Expected %q, got %q", plaintext, got)
	}
}

func TestStore_Add_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix permission bits are not meaningful on Windows")
	}
	store, _ := testStore(t)

	if err := store.Add("secret", []byte("x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	info, err := os.Stat(store.Resolver().Resolve("secret"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected mode 0600, got: %o", perm)
	}
}

func TestStore_Read_NotFound(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.Read("missing"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
}

func TestStore_Read_WrongKey(t *testing.T) {
	key := testKey(t)
	outsider := testKey(t)
	resolver := Resolver{RepoPath: filepath.Join(t.TempDir(), "repo")}

	writer := NewStore(resolver, []*rsa.PublicKey{&key.PublicKey}, key)
	if err := writer.Add("secret", []byte("x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reader := NewStore(resolver, []*rsa.PublicKey{&key.PublicKey}, outsider)
	if _, err := reader.Read("secret"); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got: %v", err)
	}
}

func TestStore_Add_NoRecipients_LeavesNothing(t *testing.T) {
	key := testKey(t)
	resolver := Resolver{RepoPath: filepath.Join(t.TempDir(), "repo")}
	store := NewStore(resolver, nil, key)

	if err := store.Add("aws/creds", []byte("x")); !errors.Is(err, kerrors.ErrEncryptFailed) {
		t.Fatalf("Expected ErrEncryptFailed, got: %v", err)
	}

	if _, err := os.Stat(resolver.Resolve("aws/creds")); !os.IsNotExist(err) {
		t.Error("Expected no ciphertext to be left behind")
	}
}

func TestStore_Remove(t *testing.T) {
	store, _ := testStore(t)

	if err := store.Add("secret", []byte("x")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Remove("secret"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Exists("secret") {
		t.Error("Expected the ciphertext to be gone")
	}

	if err := store.Remove("secret"); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
}

func TestStore_Rename(t *testing.T) {
	store, _ := testStore(t)
	plaintext := []byte("content")

	if err := store.Add("old/name", plaintext); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	before, err := os.ReadFile(store.Resolver().Resolve("old/name"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if err := store.Rename("old/name", "new/deep/name", false); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	if store.Exists("old/name") {
		t.Error("Expected the source ciphertext to be gone")
	}
	after, err := os.ReadFile(store.Resolver().Resolve("new/deep/name"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Expected the ciphertext to move byte-identical, without re-encryption")
	}
}

func TestStore_Rename_SourceMissing(t *testing.T) {
	store, _ := testStore(t)

	if err := store.Rename("missing", "anywhere", false); !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
}

func TestStore_Rename_RefusesExistingDestination(t *testing.T) {
	store, _ := testStore(t)

	if err := store.Add("a", []byte("content a")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add("b", []byte("content b")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Rename("a", "b", false); !errors.Is(err, kerrors.ErrSecretExists) {
		t.Fatalf("Expected ErrSecretExists, got: %v", err)
	}

	// Nothing was lost by the refused move.
	got, err := store.Read("b")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "content b" {
		t.Errorf("Expected destination content to be untouched, got %q", got)
	}

	// A forced move replaces the destination.
	if err := store.Rename("a", "b", true); err != nil {
		t.Fatalf("Forced rename failed: %v", err)
	}
	got, err = store.Read("b")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != "content a" {
		t.Errorf("Expected destination to hold the moved content, got %q", got)
	}
}

func TestStore_RecipientChange_DoesNotReencrypt(t *testing.T) {
	// Editing the recipient list after secrets exist does not rewrite
	// them: an old ciphertext stays decryptable by the original
	// recipient and opaque to the new one. This is a known limitation,
	// asserted here so a future change is deliberate.
	original := testKey(t)
	added := testKey(t)
	resolver := Resolver{RepoPath: filepath.Join(t.TempDir(), "repo")}

	store := NewStore(resolver, []*rsa.PublicKey{&original.PublicKey}, original)
	if err := store.Add("legacy", []byte("old secret")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	asAdded := NewStore(resolver, []*rsa.PublicKey{&original.PublicKey, &added.PublicKey}, added)
	if _, err := asAdded.Read("legacy"); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected the new recipient to be unable to read old ciphertext, got: %v", err)
	}

	if _, err := store.Read("legacy"); err != nil {
		t.Errorf("Expected the original recipient to still read old ciphertext, got: %v", err)
	}
}
