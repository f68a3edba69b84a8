// Package git runs the git CLI and returns structured results.
//
// Every operation goes through a single [Runner], which builds the argument
// vector, executes git via a [cmd.Executor] and classifies the outcome. A
// nonzero exit is always an error. Operations never invoke a shell: string
// options are split with shell quoting rules by [FormatOpts] and handed to
// git as separate arguments.
//
// # Errors
//
// Every error returned by an operation is an [*Error] whose kind can be
// tested with errors.Is:
//
//   - [ErrInvalidArgument]: rejected before anything ran (relative path,
//     credentials on a non-https URL, conflicting options)
//   - [ErrExecutionFailed]: git exited nonzero on every attempt
//   - [ErrLookupFailed]: git succeeded but the requested record is missing
//
// # SSH identities
//
// Network operations (clone, fetch, pull, push, submodule, ls-remote) accept
// a list of private keys. Each key is tried in order until git succeeds. For
// every attempt a private GIT_SSH wrapper script is written to a temporary
// file, pointed at the key through GIT_IDENTITY, and removed again before the
// next attempt starts. On Windows only GIT_IDENTITY is set.
//
// # Paths
//
// Every working directory and target path must be absolute. The config
// operations also accept the literal "global" to address the user's global
// git configuration.
package git
