// Package errors provides typed error values for the crypt application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Access errors: caller cannot decrypt the repository (ErrUnauthorized, ErrKeyNotFound)
//   - Repository errors: repository state issues (ErrRepoNotInitialized, ErrRootNotDirectory)
//   - Crypto errors: encryption/decryption failures (ErrEncryptFailed, ErrDecryptFailed)
//   - Secret errors: logical path issues (ErrSecretNotFound, ErrSecretExists)
//   - Execution errors: child process and editor failures (ErrEditorFailed, ErrInterrupted)
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, err := os.Stat(cipherPath); os.IsNotExist(err) {
//	    return errors.ErrSecretNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Cat(ctx, opts)
//	if errors.Is(err, kerrors.ErrSecretNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %v", errors.ErrDecryptFailed, err)
package errors
