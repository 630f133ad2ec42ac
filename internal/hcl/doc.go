// Package hcl provides the HCL implementation of config.Loader. It parses
// `tag` and `system` blocks from .hcl files and translates them into the
// format-agnostic config.Model.
//
// Argument expressions are evaluated while loading, with an `env` object
// exposing the process environment:
//
//	system "greet" {
//	  handler = "print"
//	  arguments {
//	    message = "hello ${env.USER}"
//	  }
//	}
package hcl
