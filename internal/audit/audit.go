package audit

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cryptsh/crypt/internal/configs"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`       // RFC3339 with microseconds.
	Identity  string `json:"identity"` // Name of the invoking identity.
	Operation string `json:"op"`       // Operation name.

	// Optional fields depending on operation.
	Path    string   `json:"path,omitempty"`    // For add/rm/edit/pwgen/cat/clip.
	From    string   `json:"from,omitempty"`    // For mv.
	To      string   `json:"to,omitempty"`      // For mv.
	Secrets []string `json:"secrets,omitempty"` // For exec (injected and linked paths).
	Command string   `json:"command,omitempty"` // For exec.
}

// New builds an entry for the given operation with the invoking identity
// pre-populated from settings.
func New(settings *configs.Settings, op string) Entry {
	return Entry{
		Identity:  settings.Identity,
		Operation: op,
	}
}

// Log appends an entry to the repository audit log.
// Logging is best-effort: operations should not fail just because audit
// logging failed, so errors are swallowed.
func Log(settings *configs.Settings, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// #nosec G306 -- the audit log holds no secret content.
	f, err := os.OpenFile(settings.AuditPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the repository audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(settings *configs.Settings) ([]Entry, error) {
	data, err := os.ReadFile(settings.AuditPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
