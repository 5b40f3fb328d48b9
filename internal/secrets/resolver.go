package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// CipherSuffix is the extension carried by every ciphertext file.
const CipherSuffix = ".gpg"

// Entry describes one stored secret as reported by Enumerate.
type Entry struct {
	// LogicalPath is the slash-delimited secret identifier.
	LogicalPath string

	// Size is the ciphertext size in bytes.
	Size int64

	// ModTime is the ciphertext's last modification time.
	ModTime time.Time
}

// Resolver maps logical secret paths to ciphertext file locations.
type Resolver struct {
	// RepoPath is the directory holding all ciphertext files.
	RepoPath string
}

// Resolve returns the absolute ciphertext path for a logical secret path.
// It is a pure function: it never touches the disk and never fails.
func (r Resolver) Resolve(logical string) string {
	return filepath.Join(r.RepoPath, filepath.FromSlash(logical)) + CipherSuffix
}

// ValidatePath checks that a logical path is well formed: non-empty,
// slash-delimited with no leading or trailing slash, and free of empty,
// "." and ".." components.
func ValidatePath(logical string) error {
	if logical == "" {
		return fmt.Errorf("%w: empty path", kerrors.ErrInvalidPath)
	}
	if strings.HasPrefix(logical, "/") || strings.HasSuffix(logical, "/") {
		return fmt.Errorf("%w: %q must not begin or end with a slash", kerrors.ErrInvalidPath, logical)
	}
	for _, part := range strings.Split(logical, "/") {
		switch part {
		case "", ".", "..":
			return fmt.Errorf("%w: %q contains an invalid component", kerrors.ErrInvalidPath, logical)
		}
	}
	return nil
}

// Enumerate walks the repository and reports every stored secret, sorted
// ascending by logical path. The walk is repeated on every call so that
// repository changes between calls are observed. A missing repository root
// yields an empty result, not an error.
func (r Resolver) Enumerate() ([]Entry, error) {
	if _, err := os.Stat(r.RepoPath); os.IsNotExist(err) {
		return nil, nil
	}

	var entries []Entry
	err := filepath.WalkDir(r.RepoPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !strings.HasSuffix(path, CipherSuffix) {
			return nil
		}

		rel, err := filepath.Rel(r.RepoPath, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			LogicalPath: strings.TrimSuffix(filepath.ToSlash(rel), CipherSuffix),
			Size:        info.Size(),
			ModTime:     info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking repository: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LogicalPath < entries[j].LogicalPath
	})
	return entries, nil
}

// Glob enumerates the repository and keeps only entries whose logical path
// matches the doublestar pattern (e.g. "aws/**").
func (r Resolver) Glob(pattern string) ([]Entry, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	entries, err := r.Enumerate()
	if err != nil {
		return nil, err
	}

	filtered := entries[:0]
	for _, e := range entries {
		ok, err := doublestar.Match(pattern, e.LogicalPath)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if ok {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
