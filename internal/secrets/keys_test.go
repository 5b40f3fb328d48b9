package secrets

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/ssh"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// writeKeyPair writes a PKCS#1 PEM private key and PKIX PEM public key for
// the named identity into dir.
func writeKeyPair(t *testing.T, dir, name string) {
	t.Helper()
	key := testKey(t)

	privPem := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(filepath.Join(dir, name+".pem"), privPem, 0600); err != nil {
		t.Fatalf("Failed to write private key: %v", err)
	}

	pubASN1, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal public key: %v", err)
	}
	pubPem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})
	if err := os.WriteFile(filepath.Join(dir, name+".pub"), pubPem, 0600); err != nil {
		t.Fatalf("Failed to write public key: %v", err)
	}
}

func TestKeyring_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeKeyPair(t, dir, "alice")
	keyring := Keyring{Dir: dir}

	priv, err := keyring.PrivateKey("alice")
	if err != nil {
		t.Fatalf("PrivateKey failed: %v", err)
	}
	pub, err := keyring.PublicKey("alice")
	if err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}

	if pub.N.Cmp(priv.PublicKey.N) != 0 {
		t.Error("Loaded public key does not match the private key")
	}
}

func TestKeyring_Missing(t *testing.T) {
	keyring := Keyring{Dir: t.TempDir()}

	if _, err := keyring.PrivateKey("nobody"); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got: %v", err)
	}
	if _, err := keyring.PublicKey("nobody"); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got: %v", err)
	}
}

func TestLoadPublicKey_OpenSSHFormat(t *testing.T) {
	dir := t.TempDir()
	key := testKey(t)

	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to build OpenSSH public key: %v", err)
	}
	path := filepath.Join(dir, "carol.pub")
	if err := os.WriteFile(path, ssh.MarshalAuthorizedKey(sshPub), 0600); err != nil {
		t.Fatalf("Failed to write OpenSSH public key: %v", err)
	}

	loaded, err := LoadPublicKey(path)
	if err != nil {
		t.Fatalf("LoadPublicKey failed: %v", err)
	}
	if loaded.N.Cmp(key.PublicKey.N) != 0 {
		t.Error("Loaded OpenSSH public key does not match")
	}
}

func TestLoadPrivateKey_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pem")
	if err := os.WriteFile(path, []byte("not a key"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadPrivateKey(path); !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got: %v", err)
	}
}

func TestKeyring_PublicKeys_Order(t *testing.T) {
	dir := t.TempDir()
	writeKeyPair(t, dir, "alice")
	writeKeyPair(t, dir, "bob")
	keyring := Keyring{Dir: dir}

	keys, err := keyring.PublicKeys([]string{"bob", "alice"})
	if err != nil {
		t.Fatalf("PublicKeys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("Expected 2 keys, got: %d", len(keys))
	}

	bob, err := keyring.PublicKey("bob")
	if err != nil {
		t.Fatalf("PublicKey failed: %v", err)
	}
	if keys[0].N.Cmp(bob.N) != 0 {
		t.Error("Expected recipient order to be preserved")
	}
}
