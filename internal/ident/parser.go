package ident

import (
	"fmt"
	"regexp"
)

// nameRegex is the schema for names declared in pipeline files.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// isValidName rejects undesirable but technically matching names.
func isValidName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return true
}

// Parse validates raw and returns it as a Named ID.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("identifier cannot be empty")
	}
	if !nameRegex.MatchString(raw) {
		return ID{}, fmt.Errorf("invalid identifier format: %q", raw)
	}
	if !isValidName(raw) {
		return ID{}, fmt.Errorf("invalid identifier name: %q", raw)
	}
	return Named(raw), nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}
