package errors

import "errors"

// Access errors indicate the caller lacks the capability to decrypt this repository.
var (
	// ErrUnauthorized indicates the caller cannot decrypt the repository marker.
	ErrUnauthorized = errors.New("not authorized to decrypt this repository")

	// ErrKeyNotFound indicates a recipient's key could not be located.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKey indicates a key file is malformed or of an unsupported type.
	ErrInvalidKey = errors.New("invalid or unsupported key format")

	// ErrNoRecipients indicates the repository has an empty recipient list.
	ErrNoRecipients = errors.New("no recipients configured")
)

// Repository state errors indicate issues with the store's on-disk layout.
var (
	// ErrRepoNotInitialized indicates the repository has not been set up yet.
	ErrRepoNotInitialized = errors.New("repository has not been initialized")

	// ErrRepoAlreadyInitialized indicates the repository has already been set up.
	ErrRepoAlreadyInitialized = errors.New("repository has already been initialized")

	// ErrRootNotDirectory indicates the repository root path exists but is not a directory.
	ErrRootNotDirectory = errors.New("repository root exists but is not a directory")

	// ErrInvalidConfig indicates the repository configuration is malformed or corrupt.
	ErrInvalidConfig = errors.New("repository configuration is invalid")
)

// Cryptographic errors indicate failures of the encryption capability.
var (
	// ErrEncryptFailed indicates a secret could not be encrypted.
	ErrEncryptFailed = errors.New("failed to encrypt secret")

	// ErrDecryptFailed indicates a ciphertext could not be decrypted by the caller's key.
	ErrDecryptFailed = errors.New("failed to decrypt secret")
)

// Secret errors indicate issues with logical secret paths.
var (
	// ErrSecretNotFound indicates no ciphertext exists for the logical path.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretExists indicates a ciphertext already exists at the destination path.
	ErrSecretExists = errors.New("secret already exists")

	// ErrInvalidPath indicates the logical path is malformed.
	ErrInvalidPath = errors.New("invalid secret path")
)

// ErrInvalidDateFormat indicates a date filter could not be parsed.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Execution errors indicate failures of spawned collaborator processes.
var (
	// ErrEditorFailed indicates the external editor exited non-zero.
	ErrEditorFailed = errors.New("editor exited with an error")

	// ErrInterrupted indicates a signal terminated the child process.
	ErrInterrupted = errors.New("execution interrupted")

	// ErrAborted indicates the user declined an interactive confirmation.
	ErrAborted = errors.New("aborted")
)
