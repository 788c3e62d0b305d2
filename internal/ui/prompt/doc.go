// Package prompt provides simple interactive prompts.
//
// Prompts render on stderr so stdout stays clean for data.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation before a run touches the project
//   - [TextInput]: single-line input with validation, used by config init
package prompt
