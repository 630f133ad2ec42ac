package ident

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes the two identifier variants.
type Kind uint8

const (
	// KindNone is the zero ID.
	KindNone Kind = iota
	KindNamed
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindAnonymous:
		return "anonymous"
	default:
		return "none"
	}
}

// ID identifies a runnable or a tag within a schedule.
type ID struct {
	kind  Kind
	name  string
	token uuid.UUID
}

// Named returns an ID that is equal to every other Named ID with the same name.
func Named(name string) ID {
	return ID{kind: KindNamed, name: name}
}

// Anonymous returns a fresh ID that cannot collide with any other ID. The
// description is only used for display.
func Anonymous(description string) ID {
	return ID{kind: KindAnonymous, name: description, token: uuid.New()}
}

// Kind returns the variant of the ID.
func (id ID) Kind() Kind { return id.kind }

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id.kind == KindNone }

// Name returns the name of a Named ID or the description of an Anonymous one.
func (id ID) Name() string { return id.name }

// String renders the ID for logs and error messages. Anonymous IDs are shown
// as "description#token" (the token shortened) to keep them distinguishable.
func (id ID) String() string {
	switch id.kind {
	case KindNamed:
		return id.name
	case KindAnonymous:
		return fmt.Sprintf("%s#%s", id.name, id.token.String()[:8])
	default:
		return ""
	}
}
