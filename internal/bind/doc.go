// Package bind implements config.Converter. It binds evaluated cty arguments
// onto the exported fields of a handler's input struct.
//
// Fields are matched by their `phase` struct tag:
//
//	type Input struct {
//		Message string `phase:"message"`
//		Repeat  int    `phase:"repeat,optional"`
//	}
//
// Fields without a tag, or tagged "-", are ignored. Arguments that match no
// field are an error, as are missing arguments for non-optional fields.
package bind
