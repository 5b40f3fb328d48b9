package secrets

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// LoadPrivateKey loads an RSA private key from disk.
// Both PKCS#1 PEM ("RSA PRIVATE KEY") and OpenSSH-format keys are accepted.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
		}
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block != nil && block.Type == "RSA PRIVATE KEY" {
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
		}
		return key, nil
	}

	// Fall back to OpenSSH format (including "OPENSSH PRIVATE KEY" blocks).
	raw, err := ssh.ParseRawPrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	rsaKey, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA private key", kerrors.ErrInvalidKey)
	}
	return rsaKey, nil
}

// LoadPublicKey loads an RSA public key from disk.
// Both PKIX PEM ("PUBLIC KEY") and OpenSSH authorized_keys lines are accepted.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, path)
		}
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block != nil && block.Type == "PUBLIC KEY" {
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA public key", kerrors.ErrInvalidKey)
		}
		return rsaPub, nil
	}

	sshPub, _, _, _, err := ssh.ParseAuthorizedKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	cryptoPub, ok := sshPub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported OpenSSH key type %s", kerrors.ErrInvalidKey, sshPub.Type())
	}
	rsaPub, ok := cryptoPub.CryptoPublicKey().(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA public key", kerrors.ErrInvalidKey)
	}
	return rsaPub, nil
}

// Keyring resolves recipient names to key files in a single directory.
type Keyring struct {
	// Dir is the directory holding <name>.pub and <name>.pem files.
	Dir string
}

// PublicKey loads the named recipient's public key (<name>.pub).
func (k Keyring) PublicKey(name string) (*rsa.PublicKey, error) {
	return LoadPublicKey(filepath.Join(k.Dir, name+".pub"))
}

// PublicKeyPath returns the on-disk location of the named public key.
func (k Keyring) PublicKeyPath(name string) string {
	return filepath.Join(k.Dir, name+".pub")
}

// PrivateKey loads the named identity's private key, trying <name>.pem and
// then the bare <name>.
func (k Keyring) PrivateKey(name string) (*rsa.PrivateKey, error) {
	key, err := LoadPrivateKey(filepath.Join(k.Dir, name+".pem"))
	if err == nil {
		return key, nil
	}
	return LoadPrivateKey(filepath.Join(k.Dir, name))
}

// PublicKeys loads every named recipient's public key, in order.
func (k Keyring) PublicKeys(names []string) ([]*rsa.PublicKey, error) {
	keys := make([]*rsa.PublicKey, 0, len(names))
	for _, name := range names {
		pub, err := k.PublicKey(name)
		if err != nil {
			return nil, fmt.Errorf("loading public key for %s: %w", name, err)
		}
		keys = append(keys, pub)
	}
	return keys, nil
}
