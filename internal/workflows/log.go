package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cryptsh/crypt/internal/audit"
	"github.com/cryptsh/crypt/internal/configs"
	kerrors "github.com/cryptsh/crypt/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Identity filters entries by invoking identity.
	Identity string

	// Operations filters entries by operation names (comma-separated).
	Operations string

	// Since filters entries at or after this date (YYYY-MM-DD).
	Since string

	// Until filters entries at or before this date (YYYY-MM-DD).
	Until string

	// Settings override the environment-derived settings. Mainly for tests.
	Settings *configs.Settings
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries, oldest first unless
	// Reverse was set.
	Entries []audit.Entry

	// TotalEntries is the count of entries before filtering.
	TotalEntries int
}

// Log reads and filters the repository audit log.
//
// The log holds operation metadata only, never secret content, so like ls
// it bypasses the authorization gate. A repository with no audit log yet
// yields an empty result. Returns ErrRepoNotInitialized if there is no
// repository and ErrInvalidDateFormat for malformed date filters.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	settings, err := resolveSettings(opts.Settings)
	if err != nil {
		return nil, err
	}
	if _, err := configs.LoadRepoConfig(settings); err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(settings)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return result, nil
	}

	filtered := entries
	if opts.Identity != "" {
		filtered = filterByIdentity(filtered, opts.Identity)
	}
	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}
	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.Before(since) })
	}
	if opts.Until != "" {
		until, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		filtered = filterByTime(filtered, func(t time.Time) bool { return !t.After(until) })
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			// Keep the most recent entries.
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterByIdentity(entries []audit.Entry, identity string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Identity, identity) {
			result = append(result, e)
		}
	}
	return result
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterByTime keeps entries whose timestamp satisfies keep. Entries with
// unparseable timestamps are dropped.
func filterByTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if keep(t) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDateTime renders an audit timestamp as YYYY-MM-DD HH:MM:SS for
// display.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails renders the operation-specific fields of an audit entry on
// one line.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "mv":
		return e.From + " -> " + e.To
	case "exec":
		if len(e.Secrets) == 0 {
			return e.Command
		}
		return fmt.Sprintf("%s (%d secrets)", e.Command, len(e.Secrets))
	case "init":
		return ""
	default:
		return e.Path
	}
}
