package secrets

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/cryptsh/crypt/internal/configs"
)

// Status is the outcome of an authorization probe.
type Status int

const (
	// Unauthorized means the caller cannot decrypt this repository.
	Unauthorized Status = iota

	// Authorized means the caller's key decrypts the repository marker.
	Authorized
)

func (s Status) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "unauthorized"
}

// markerPlaintext is the fixed, non-secret content of the marker ciphertext.
var markerPlaintext = []byte("crypt repository marker\n")

// WriteMarker encrypts the marker to the recipient set and stores it at the
// repository's marker path with mode 0600. Called once at initialization.
func WriteMarker(settings *configs.Settings, recipients []*rsa.PublicKey) error {
	ciphertext, err := Encrypt(markerPlaintext, recipients)
	if err != nil {
		return fmt.Errorf("encrypting marker: %w", err)
	}
	if err := os.WriteFile(settings.MarkerPath, ciphertext, 0600); err != nil {
		return fmt.Errorf("writing marker: %w", err)
	}
	return nil
}

// CheckAccess probes whether the caller can decrypt this repository by
// attempting to decrypt the marker with their private key. Any failure,
// including a missing marker or no usable key, reports Unauthorized.
func CheckAccess(settings *configs.Settings, identity *rsa.PrivateKey) Status {
	if identity == nil {
		return Unauthorized
	}
	ciphertext, err := os.ReadFile(settings.MarkerPath)
	if err != nil {
		return Unauthorized
	}
	if _, err := Decrypt(ciphertext, identity); err != nil {
		return Unauthorized
	}
	return Authorized
}
