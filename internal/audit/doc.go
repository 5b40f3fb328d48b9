// Package audit provides audit trail logging for crypt operations.
//
// Every mutating operation (init, add, rm, mv, edit, pwgen) and every
// materialization (exec) is recorded in a repository-level audit log. This
// helps an operator reconstruct when secrets were touched and by whom.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<root>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Invoking identity name
//   - Operation name
//   - Operation-specific details (secret path, command, etc.)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Operations should never
// fail just because audit logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
