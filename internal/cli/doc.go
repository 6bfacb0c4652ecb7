// Package cli defines the Cobra command tree for the usl CLI. Each file in
// this package builds one command (list, add, install, config, version)
// and the root command doubles as the interactive picker. Command
// implementations delegate to internal packages for business logic and only
// handle flag parsing, I/O formatting, and user interaction.
package cli
