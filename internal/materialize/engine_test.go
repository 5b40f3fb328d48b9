package materialize

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	kerrors "github.com/cryptsh/crypt/internal/errors"
	"github.com/cryptsh/crypt/internal/secrets"
)

func testEngine(t *testing.T) (*Engine, *secrets.Store) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	resolver := secrets.Resolver{RepoPath: t.TempDir()}
	store := secrets.NewStore(resolver, []*rsa.PublicKey{&key.PublicKey}, key)
	return &Engine{Store: store}, store
}

func requireSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
}

func TestEngine_InjectsEnvironment(t *testing.T) {
	requireSh(t)

	engine, store := testEngine(t)
	if err := store.Add("svc/env", []byte("export TOKEN=xyzzy\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}

	var out bytes.Buffer
	code, err := engine.Run(Request{
		EnvPaths: []string{"svc/env"},
		Argv:     []string{"sh", "-c", "printf '%s' \"$TOKEN\""},
		Stdout:   &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Expected exit status 0, got: %d", code)
	}
	if out.String() != "xyzzy" {
		t.Errorf("Expected injected value, got: %q", out.String())
	}
}

func TestEngine_LaterEnvSecretWins(t *testing.T) {
	requireSh(t)

	engine, store := testEngine(t)
	if err := store.Add("a", []byte("K=first\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}
	if err := store.Add("b", []byte("K=second\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}

	var out bytes.Buffer
	code, err := engine.Run(Request{
		EnvPaths: []string{"a", "b"},
		Argv:     []string{"sh", "-c", "printf '%s' \"$K\""},
		Stdout:   &out,
	})
	if err != nil || code != 0 {
		t.Fatalf("Run failed: code=%d err=%v", code, err)
	}
	if out.String() != "second" {
		t.Errorf("Expected later secret to win, got: %q", out.String())
	}
}

func TestEngine_LinksRemovedAfterExit(t *testing.T) {
	requireSh(t)

	engine, store := testEngine(t)
	if err := store.Add("tls/cert", []byte("PEM DATA\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "cert.pem")
	var out bytes.Buffer
	code, err := engine.Run(Request{
		Links:  []Link{{LogicalPath: "tls/cert", Dest: dest}},
		Argv:   []string{"sh", "-c", "cat \"$1\"", "sh", dest},
		Stdout: &out,
	})
	if err != nil || code != 0 {
		t.Fatalf("Run failed: code=%d err=%v", code, err)
	}
	if out.String() != "PEM DATA\n" {
		t.Errorf("Expected child to read the plaintext, got: %q", out.String())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("Expected link to be removed after the child exited, got: %v", err)
	}
}

func TestEngine_LinksRemovedAfterChildFailure(t *testing.T) {
	requireSh(t)

	engine, store := testEngine(t)
	if err := store.Add("tls/cert", []byte("PEM DATA\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "cert.pem")
	code, err := engine.Run(Request{
		Links: []Link{{LogicalPath: "tls/cert", Dest: dest}},
		Argv:  []string{"sh", "-c", "exit 3"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 3 {
		t.Errorf("Expected child exit status 3, got: %d", code)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("Expected link to be removed after the child failed, got: %v", err)
	}
}

func TestEngine_ExitStatusPropagated(t *testing.T) {
	requireSh(t)

	engine, _ := testEngine(t)
	code, err := engine.Run(Request{Argv: []string{"sh", "-c", "exit 7"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 7 {
		t.Errorf("Expected exit status 7, got: %d", code)
	}
}

func TestEngine_MissingEnvSecretAbortsBeforeChild(t *testing.T) {
	requireSh(t)

	engine, _ := testEngine(t)

	marker := filepath.Join(t.TempDir(), "ran")
	code, err := engine.Run(Request{
		EnvPaths: []string{"does/not/exist"},
		Argv:     []string{"sh", "-c", "touch " + marker},
	})
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
	if code != ExitDecryptFailure {
		t.Errorf("Expected exit status %d, got: %d", ExitDecryptFailure, code)
	}
	if _, statErr := os.Stat(marker); !os.IsNotExist(statErr) {
		t.Errorf("Expected the child to never run, got: %v", statErr)
	}
}

func TestEngine_MissingLinkSecretRemovesEarlierLinks(t *testing.T) {
	requireSh(t)

	engine, store := testEngine(t)
	if err := store.Add("one", []byte("data\n")); err != nil {
		t.Fatalf("Failed to add secret: %v", err)
	}

	dir := t.TempDir()
	first := filepath.Join(dir, "one.txt")
	code, err := engine.Run(Request{
		Links: []Link{
			{LogicalPath: "one", Dest: first},
			{LogicalPath: "missing", Dest: filepath.Join(dir, "two.txt")},
		},
		Argv: []string{"sh", "-c", "true"},
	})
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
	if code != ExitDecryptFailure {
		t.Errorf("Expected exit status %d, got: %d", ExitDecryptFailure, code)
	}
	if _, statErr := os.Stat(first); !os.IsNotExist(statErr) {
		t.Errorf("Expected earlier link to be torn down, got: %v", statErr)
	}
}

func TestEngine_EmptyArgv(t *testing.T) {
	engine, _ := testEngine(t)
	code, err := engine.Run(Request{})
	if err == nil {
		t.Fatal("Expected an error for an empty command")
	}
	if code != ExitDecryptFailure {
		t.Errorf("Expected exit status %d, got: %d", ExitDecryptFailure, code)
	}
}
