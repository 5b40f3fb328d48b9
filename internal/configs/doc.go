// Package configs manages invocation settings and repository configuration
// for crypt.
//
// # Settings
//
// Settings describe where the current invocation finds its repository and
// keys. They are resolved once per invocation from the environment and then
// passed explicitly to every component that needs them; nothing below the
// CLI layer reads ambient process state.
//
//   - CRYPT_ROOT: repository root (default ~/.crypt)
//   - CRYPT_KEYS: key directory (default $XDG_DATA_HOME/crypt/keys)
//   - CRYPT_IDENTITY: invoking identity name (default OS username)
//
// # Repository Configuration
//
// The repository config is stored in TOML format at <root>/crypt.cfg:
//
//	[repo]
//	id = "0b88a9e2-..."
//	created_at = 2026-08-29T10:00:00Z
//
//	[keys]
//	recipients = "alice,bob"
//
// The recipient list is written once at initialization and treated as
// immutable for the lifetime of the repository. Changing it does not
// re-encrypt existing secrets.
package configs
