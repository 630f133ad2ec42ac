// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the host loop that runs a file-declared
// schedule frame after frame, decoupled from any specific entrypoint like a
// CLI.
package app
