// Package secrets provides the repository core for crypt: the encryption
// capability, logical path resolution, the secret store, the authorization
// gate, and the edit transaction.
//
// # Encryption Architecture
//
// crypt uses a hybrid encryption scheme:
//
//  1. A random 256-bit file key encrypts each secret with NaCl secretbox
//  2. The file key is wrapped with RSA-OAEP once per recipient
//  3. All wraps travel inside the ciphertext, so any configured recipient
//     can decrypt any secret with nothing but their private key
//
// Re-encrypting the same plaintext produces different output (random file
// key and nonce). No other package inspects the wire format.
//
// # Key Management
//
// Key generation is out of scope; keys are provisioned externally (for
// example with ssh-keygen or openssl). The Keyring resolves recipient names
// to key files in a directory:
//
//   - <name>.pub: public key, PKIX PEM or OpenSSH authorized_keys format
//   - <name>.pem (or <name>): private key, PKCS#1 PEM or OpenSSH format
//
// Recipient public keys are copied into the repository's keys directory at
// initialization. Private keys stay in the invoking user's key directory.
//
// # Storage
//
// Each secret owns exactly one ciphertext file at <repo>/<logical path>.gpg
// with mode 0600. A secret's existence is defined solely by the presence of
// its ciphertext file; there is no separate index. Writes go through a
// temporary file in the destination directory followed by a rename, so a
// reader never observes a partially written ciphertext.
//
// # Authorization
//
// The repository holds a fixed marker ciphertext encrypted to the recipient
// set at initialization. CheckAccess probes it with the caller's private
// key and reports Authorized or Unauthorized; commands reject unauthorized
// callers before performing any mutation.
package secrets
