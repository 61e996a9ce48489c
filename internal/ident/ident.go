// Package ident generates opaque identifiers for sessions, plans and exercise instances.
package ident

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh unique identifier.
func New() string {
	return uuid.NewString()
}

// Suffix returns a short random tail suitable for disambiguating derived ids.
func Suffix() string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[len(s)-4:]
}

// Short returns n random lowercase alphanumeric characters (n <= 32).
func Short(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
