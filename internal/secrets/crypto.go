package secrets

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// fileKeySize is the length of the per-secret symmetric key (AES-256 equivalent).
const fileKeySize = 32

// nonceSize is the secretbox nonce length prepended to the sealed payload.
const nonceSize = 24

// Encrypt seals plaintext to every recipient public key.
//
// A fresh random file key seals the payload with NaCl secretbox; the file
// key is wrapped with RSA-OAEP once per recipient. The output frames the
// wrap count, each length-prefixed wrap, and the nonce-prefixed payload.
func Encrypt(plaintext []byte, recipients []*rsa.PublicKey) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("no recipient keys to encrypt to")
	}
	if len(recipients) > 0xFFFF {
		return nil, fmt.Errorf("too many recipients: %d", len(recipients))
	}

	var key [fileKeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, fmt.Errorf("failed to generate file key: %w", err)
	}

	var out []byte
	out = binary.BigEndian.AppendUint16(out, uint16(len(recipients)))

	for _, pub := range recipients {
		wrap, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key[:], nil)
		if err != nil {
			return nil, fmt.Errorf("failed to wrap file key: %w", err)
		}
		if len(wrap) > 0xFFFF {
			return nil, fmt.Errorf("wrapped key too large: %d bytes", len(wrap))
		}
		out = binary.BigEndian.AppendUint16(out, uint16(len(wrap)))
		out = append(out, wrap...)
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return secretbox.Seal(append(out, nonce[:]...), plaintext, &nonce, &key), nil
}

// Decrypt opens a ciphertext produced by Encrypt using the caller's private
// key. Every wrapped file key is tried in order; if none can be unwrapped,
// or the payload fails to open, an error is returned.
func Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("no private key available")
	}
	if len(ciphertext) < 2 {
		return nil, fmt.Errorf("ciphertext too short")
	}

	count := int(binary.BigEndian.Uint16(ciphertext))
	rest := ciphertext[2:]

	var key [fileKeySize]byte
	unwrapped := false
	for i := 0; i < count; i++ {
		if len(rest) < 2 {
			return nil, fmt.Errorf("truncated ciphertext header")
		}
		wrapLen := int(binary.BigEndian.Uint16(rest))
		rest = rest[2:]
		if len(rest) < wrapLen {
			return nil, fmt.Errorf("truncated ciphertext header")
		}
		wrap := rest[:wrapLen]
		rest = rest[wrapLen:]

		if unwrapped {
			continue
		}
		fileKey, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, privateKey, wrap, nil)
		if err != nil || len(fileKey) != fileKeySize {
			continue
		}
		copy(key[:], fileKey)
		unwrapped = true
	}

	if !unwrapped {
		return nil, fmt.Errorf("no wrapped file key is decryptable by this key")
	}
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("ciphertext payload too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], rest[:nonceSize])

	plaintext, ok := secretbox.Open(nil, rest[nonceSize:], &nonce, &key)
	if !ok {
		return nil, fmt.Errorf("failed to open sealed payload")
	}
	return plaintext, nil
}
