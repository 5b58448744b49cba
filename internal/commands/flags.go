// Package commands contains the CLI subcommand implementations.
package commands

// Flags holds global flag values shared by all commands.
type Flags struct {
	LogLevel string
	LogFile  string
}
