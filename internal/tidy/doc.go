// Package tidy talks to clang-tidy: it writes the .clang-tidy file that
// selects a single check and runs run-clang-tidy in fix mode.
//
// The generated file disables every check and enables exactly one:
//
//	Checks: -*,modernize-use-override
//	WarningsAsErrors: ""
//	HeaderFilterRegex: ""
//	FormatStyle: none
//	User: ""
//	ExtraArgs: []
//	ExtraArgsBefore: []
//
// [Writer] and [Runner] implement the orchestrator's ArtifactWriter and
// Invoker interfaces.
package tidy
