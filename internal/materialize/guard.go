package materialize

import "os"

// teardown registers materialized plaintext paths and removes them all on
// release, regardless of how control leaves the enclosing operation.
type teardown struct {
	paths []string
}

// add registers a path for removal. Paths are registered before their
// plaintext is written, so a partial write is still cleaned up.
func (t *teardown) add(path string) {
	t.paths = append(t.paths, path)
}

// release removes every registered path. A path that is already absent is
// not an error. Safe to call more than once.
func (t *teardown) release() {
	for _, path := range t.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// On Windows a read-only file cannot be removed directly.
			_ = os.Chmod(path, 0600)
			_ = os.Remove(path)
		}
	}
	t.paths = nil
}
