package workflows

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
)

// Character classes accepted by pwgen.
const (
	CharsAlphanum = "alphanum"
	CharsPunc     = "punc"
	CharsSpace    = "space"
)

// DefaultPasswordLength is used when no length is requested.
const DefaultPasswordLength = 32

var charsets = map[string]string{
	CharsAlphanum: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
	CharsPunc:     "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~",
	CharsSpace:    " ",
}

// PwgenOptions configures the pwgen workflow.
type PwgenOptions struct {
	// Path is the logical secret path to store the password at. If empty,
	// the password is only returned, not stored.
	Path string

	// Length is the password length; DefaultPasswordLength if zero.
	Length int

	// Classes selects the character classes to draw from
	// (alphanum, punc, space). Defaults to alphanum only.
	Classes []string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// PwgenResult contains the generated password.
type PwgenResult struct {
	// Password is the generated password.
	Password string

	// Stored reports whether the password was written to the repository.
	Stored bool

	// Path is the logical path the password was stored at, if any.
	Path string
}

// Pwgen generates a random password from the selected character classes
// and, when a path is given, stores it as a secret.
//
// Like every mutating command, pwgen requires an authorized caller even
// when the password is not stored.
func Pwgen(ctx context.Context, opts PwgenOptions) (*PwgenResult, error) {
	s, err := openSession(opts.Settings)
	if err != nil {
		return nil, err
	}

	length := opts.Length
	if length <= 0 {
		length = DefaultPasswordLength
	}

	classes := opts.Classes
	if len(classes) == 0 {
		classes = []string{CharsAlphanum}
	}

	alphabet := ""
	for _, class := range classes {
		chars, ok := charsets[class]
		if !ok {
			return nil, fmt.Errorf("unknown character class %q", class)
		}
		alphabet += chars
	}

	password, err := randomString(alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	result := &PwgenResult{Password: password}
	if opts.Path == "" {
		return result, nil
	}

	if err := s.store.Add(opts.Path, []byte(password+"\n")); err != nil {
		return nil, err
	}

	entry := audit.New(s.settings, "pwgen")
	entry.Path = opts.Path
	audit.Log(s.settings, entry)

	result.Stored = true
	result.Path = opts.Path
	return result, nil
}

// randomString draws length characters uniformly from alphabet using the
// system's cryptographic randomness source.
func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
