// Package cmd executes external commands and reports their outcome.
//
// An [Executor] runs one argument vector with an optional working directory,
// an optional OS user, and an environment overlay, and returns a [Result]
// holding the exit code and the captured output streams. A nonzero exit is not
// an error at this layer; callers classify it. Arguments are handed to the
// process verbatim and never pass through a shell.
//
// # Usage
//
//	res, err := cmd.OS{}.Exec(ctx, cmd.Spec{
//	    Args: []string{"git", "status", "--porcelain"},
//	    Dir:  "/srv/checkout",
//	})
//	if err != nil {
//	    // the process could not be started
//	}
//	if res.ExitCode != 0 {
//	    // res.Stderr explains why
//	}
//
// # Logging
//
// In verbose mode every command is echoed as "[dir] $ argv (duration)".
// Nonzero exits are logged at error level unless [Spec.IgnoreRetcode] is set.
package cmd
