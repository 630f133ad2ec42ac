// Package cli builds the phasegrid command tree. It layers flags, PHASEGRID_*
// environment variables and an optional config file into an app.Config, and
// maps failures onto process exit codes through ExitError.
package cli
