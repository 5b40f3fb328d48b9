package secrets

import (
	"fmt"
	"os"
	"os/exec"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// backupSuffix is appended to a ciphertext path while an edit is in flight.
const backupSuffix = ".bak"

// Transaction runs the decrypt-edit-reencrypt workflow for one secret.
//
// An existing secret is decrypted into a fresh temporary file for the
// editor; its ciphertext stays at the canonical path for the whole editor
// session, so concurrent readers are never disturbed. Only once the edited
// plaintext is ready is the old ciphertext renamed aside as a backup and
// the new one written. If re-encryption fails, the backup is renamed back,
// leaving the secret exactly as it was. On success the backup is deleted.
// The temporary plaintext file is always removed.
type Transaction struct {
	// Store provides read and add access to the repository.
	Store *Store

	// LogicalPath names the secret being edited.
	LogicalPath string

	// Editor is the editor command argv; the temporary file path is
	// appended as the final argument.
	Editor []string
}

// Run executes the transaction.
func (t *Transaction) Run() error {
	if err := ValidatePath(t.LogicalPath); err != nil {
		return err
	}
	if len(t.Editor) == 0 {
		return fmt.Errorf("%w: no editor configured", kerrors.ErrEditorFailed)
	}

	cipherPath := t.Store.Resolver().Resolve(t.LogicalPath)
	backupPath := cipherPath + backupSuffix
	exists := t.Store.Exists(t.LogicalPath)

	tmp, err := os.CreateTemp("", "crypt-edit-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if exists {
		plaintext, err := t.Store.Read(t.LogicalPath)
		if err != nil {
			tmp.Close()
			return err
		}
		if _, err := tmp.Write(plaintext); err != nil {
			tmp.Close()
			return fmt.Errorf("writing temporary plaintext: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing temporary plaintext: %w", err)
	}

	// The canonical ciphertext is untouched while the editor runs, so a
	// failed or abandoned edit needs no cleanup beyond the temp file.
	if err := t.runEditor(tmpPath); err != nil {
		return err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("reading edited plaintext: %w", err)
	}

	// Rename aside only for the commit window between here and Add, keeping
	// the pre-edit ciphertext recoverable if re-encryption fails.
	backedUp := false
	if exists {
		if err := os.Rename(cipherPath, backupPath); err != nil {
			return fmt.Errorf("backing up ciphertext: %w", err)
		}
		backedUp = true
	}

	if err := t.Store.Add(t.LogicalPath, edited); err != nil {
		if backedUp {
			_ = os.Rename(backupPath, cipherPath)
		}
		return err
	}

	if backedUp {
		if err := os.Remove(backupPath); err != nil {
			return fmt.Errorf("removing backup: %w", err)
		}
	}
	return nil
}

// runEditor invokes the external editor synchronously on the temporary
// file, with the caller's terminal attached.
func (t *Transaction) runEditor(path string) error {
	argv := append(append([]string{}, t.Editor...), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrEditorFailed, err)
	}
	return nil
}
