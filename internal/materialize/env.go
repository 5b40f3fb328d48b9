package materialize

import (
	"regexp"
	"strings"
)

// envLine matches "[export ]KEY=VALUE" with a POSIX environment variable name.
var envLine = regexp.MustCompile(`^(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// parseEnv scans plaintext for environment assignments and applies them to
// env. Lines not matching the pattern are ignored; a later assignment to a
// key already in env overwrites it.
func parseEnv(plaintext []byte, env map[string]string) {
	for _, line := range strings.Split(string(plaintext), "\n") {
		line = strings.TrimRight(line, "\r")
		m := envLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		env[m[1]] = m[2]
	}
}

// flattenEnv renders an environment map as KEY=VALUE strings.
func flattenEnv(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for key, value := range env {
		out = append(out, key+"="+value)
	}
	return out
}

// baseEnv builds an environment map from KEY=VALUE strings, typically
// os.Environ().
func baseEnv(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
