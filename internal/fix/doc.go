// Package fix models the clang-tidy checks fixcpp can apply.
//
// A [Fix] is a check name plus the user's enabled flag. The catalog of
// available checks is a plain text file with one check name per line;
// [Reconcile] merges it into the fixes already stored in the config without
// ever dropping or resetting a user's choice.
//
// # Catalog Format
//
//	# modernize checks
//	modernize-use-override
//	modernize-use-nullptr
//
// Blank lines and lines starting with # are ignored.
package fix
