// Package materialize provides the ephemeral materialization engine behind
// `crypt exec`: temporary exposure of secret plaintext to a child process,
// with guaranteed teardown.
//
// # Lifecycle
//
// One Run proceeds through fixed phases:
//
//  1. Environment injection: requested secrets are decrypted and parsed as
//     "[export ]KEY=VALUE" lines into the child's environment. A decryption
//     failure here aborts before any child process starts.
//  2. Linking: requested secrets are decrypted straight to their destination
//     filesystem paths with owner-read-only permission, each path registered
//     for teardown before its plaintext is written.
//  3. Running: the child process runs with the assembled environment and
//     inherited standard streams until it exits or a signal arrives.
//  4. Cleanup: every registered path is removed, idempotently, on every exit
//     path, including decryption failures during linking and signals during
//     the run.
//
// No linked plaintext file remains on disk after Run returns, under any
// outcome. This is the package's central invariant.
//
// # Exit Status
//
// Run reports the child's own exit status. Decryption failures short-circuit
// with ExitDecryptFailure; a signal that terminated the run yields
// ExitInterrupted.
package materialize
