package secrets

import (
	"crypto/rsa"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// Store performs add, read, remove and rename operations on ciphertext
// files. Encryption uses the configured recipient set; decryption uses the
// invoking identity's private key, which may be nil for write-only use.
type Store struct {
	resolver   Resolver
	recipients []*rsa.PublicKey
	identity   *rsa.PrivateKey
}

// NewStore builds a store over the given resolver and keys.
func NewStore(resolver Resolver, recipients []*rsa.PublicKey, identity *rsa.PrivateKey) *Store {
	return &Store{
		resolver:   resolver,
		recipients: recipients,
		identity:   identity,
	}
}

// Resolver exposes the store's path resolver.
func (s *Store) Resolver() Resolver {
	return s.resolver
}

// Add encrypts plaintext to the recipient set and stores it at the logical
// path, creating parent directories as needed. The ciphertext is written to
// a temporary file in the destination directory and renamed into place, so
// a failure never leaves a partial ciphertext behind. The final file has
// mode 0600.
func (s *Store) Add(logical string, plaintext []byte) error {
	if err := ValidatePath(logical); err != nil {
		return err
	}

	ciphertext, err := Encrypt(plaintext, s.recipients)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	cipherPath := s.resolver.Resolve(logical)
	if err := os.MkdirAll(filepath.Dir(cipherPath), 0700); err != nil {
		return fmt.Errorf("creating secret directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(cipherPath), ".crypt-add-*")
	if err != nil {
		return fmt.Errorf("creating temporary ciphertext: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(ciphertext); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing ciphertext: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("setting ciphertext permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing ciphertext: %w", err)
	}

	if err := os.Rename(tmpPath, cipherPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("committing ciphertext: %w", err)
	}
	return nil
}

// Read decrypts the secret at the logical path.
// Returns ErrSecretNotFound if no ciphertext exists and ErrDecryptFailed if
// the caller's key cannot decrypt it.
func (s *Store) Read(logical string) ([]byte, error) {
	if err := ValidatePath(logical); err != nil {
		return nil, err
	}

	ciphertext, err := os.ReadFile(s.resolver.Resolve(logical))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, logical)
		}
		return nil, fmt.Errorf("reading ciphertext: %w", err)
	}

	plaintext, err := Decrypt(ciphertext, s.identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}
	return plaintext, nil
}

// Remove deletes the secret at the logical path.
// Returns ErrSecretNotFound if no ciphertext exists. Interactive
// confirmation is the caller's responsibility; Remove is unconditional.
func (s *Store) Remove(logical string) error {
	if err := ValidatePath(logical); err != nil {
		return err
	}

	cipherPath := s.resolver.Resolve(logical)
	if _, err := os.Stat(cipherPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, logical)
	}
	return os.Remove(cipherPath)
}

// Rename moves a secret from one logical path to another. The ciphertext is
// moved byte-identical; content is never re-encrypted. Destination
// directories are created as needed. An existing destination is refused
// with ErrSecretExists unless force is set.
func (s *Store) Rename(from, to string, force bool) error {
	if err := ValidatePath(from); err != nil {
		return err
	}
	if err := ValidatePath(to); err != nil {
		return err
	}

	fromPath := s.resolver.Resolve(from)
	if _, err := os.Stat(fromPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, from)
	}

	toPath := s.resolver.Resolve(to)
	if _, err := os.Stat(toPath); err == nil && !force {
		return fmt.Errorf("%w: %s", kerrors.ErrSecretExists, to)
	}

	if err := os.MkdirAll(filepath.Dir(toPath), 0700); err != nil {
		return fmt.Errorf("creating secret directory: %w", err)
	}
	return os.Rename(fromPath, toPath)
}

// Exists reports whether a ciphertext is present for the logical path.
func (s *Store) Exists(logical string) bool {
	_, err := os.Stat(s.resolver.Resolve(logical))
	return err == nil
}
