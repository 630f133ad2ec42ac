// Package config defines the format-agnostic pipeline model, along with the
// core interfaces (Loader, Converter) for loading pipelines from files and
// binding system arguments onto Go structs.
//
// The `config.Model` is the single source of truth for the `builder`
// package. Concrete implementations of the interfaces, such as for HCL and
// YAML, are provided in separate packages.
package config
