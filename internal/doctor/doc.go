// Package doctor checks that fixcpp can run against the configured project
// and optionally repairs what it can.
//
// # Usage
//
//	err := doctor.Run(ctx, cfg, false) // check only
//	err := doctor.Run(ctx, cfg, true)  // check and fix
//
// # Issue Categories
//
//   - [CategoryTool]: run-clang-tidy and its interpreter
//   - [CategoryProject]: project directory, compile_commands.json and
//     leftovers from interrupted runs
//   - [CategoryFixes]: catalog and fix selection
//
// Each [Issue] has a [Severity]. Run returns an error when any [SeverityFail]
// issue remains after fixing.
package doctor
