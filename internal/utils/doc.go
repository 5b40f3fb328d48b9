// Package utils provides shared utility functions for the crypt application.
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all piped data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks whether stdin is a terminal
//   - Confirm: prompts for a yes/no answer on stdin
package utils
