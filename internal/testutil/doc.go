// Package testutil holds helpers shared by the application-level tests:
// a goroutine-safe log buffer, a pipeline file writer and a few small
// handler modules that record or ignore what they are asked to run.
package testutil
