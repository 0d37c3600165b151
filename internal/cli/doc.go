// Package cli wires the translation pipeline to the command line: it owns
// the cobra command tree, merges the configuration file with flags, builds
// the logger, renders results and maps failures to process exit codes.
package cli
