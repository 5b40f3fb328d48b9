// Package workflows implements the business logic for crypt commands.
//
// Each workflow corresponds to one CLI command and follows a common
// pattern:
//
//   - An Options struct configures the operation
//   - A Result struct reports the outcome
//   - The workflow function takes a context and returns (Result, error)
//
// Workflows own the authorization protocol: every operation except Init and
// List first probes the repository marker and rejects callers whose key
// cannot decrypt it, before any mutation happens. The CLI layer in cmd/
// only parses arguments, invokes a workflow, and presents the result.
//
// # Error Handling
//
// Workflows return sentinel errors from the internal/errors package so the
// CLI layer can match conditions with errors.Is() and print friendly
// messages. Exec wraps child process exit statuses in *ExitError so main()
// can propagate them as the process exit code.
package workflows
