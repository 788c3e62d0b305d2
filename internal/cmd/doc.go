// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// All helpers take a context and log the command through the context's
// logger (visible with --verbose), together with how long it ran.
//
// # Usage
//
//	// Fail with stderr as the error message:
//	err := cmd.RunContext(ctx, projectDir, "clang-tidy", "--version")
//
//	// Capture stdout:
//	out, err := cmd.OutputContext(ctx, "", "python", "--version")
//
//	// Keep running on non-zero exit; inspect the status yourself:
//	res, err := cmd.CombinedContext(ctx, projectDir, "python", script, ".", "-fix")
//	if err == nil && res.ExitCode != 0 {
//	    // the tool ran and reported a failure
//	}
//
// # Design Notes
//
// fixcpp shells out to run-clang-tidy rather than driving clang-tidy
// directly, so the user's LLVM install and compile_commands.json are used
// exactly as they would be from a shell.
package cmd
