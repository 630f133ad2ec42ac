/*
Package ident provides the identifier type used to name runnables and tags.

An ID has one of two variants:

  - Named IDs are human-readable strings and compare by value, so
    ident.Named("physics") == ident.Named("physics").
  - Anonymous IDs carry a random token and compare by identity: every call
    to Anonymous returns an ID that equals only itself (and its copies).

Both variants are comparable and can be used directly as map keys.

Names read from pipeline files go through Parse, which enforces the
`[A-Za-z0-9_.-]+` name schema.
*/
package ident
