// Package registry provides the central "glue" for the module system.
//
// The Registry stores mappings between the handler names used in pipeline
// files (e.g., "print") and the compiled Go functions and input types that
// implement them.
//
// During application startup, the registry is populated by modules and then
// validated against the loaded pipeline to ensure that every system names a
// known handler and passes arguments its input struct can accept, preventing
// a wide class of runtime errors.
package registry
