package utils

import "strings"

// DisplayName joins the name parts, falling back to "Anonymous" when a
// user row is gone or never filled its profile.
func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return "Anonymous"
	}
	return name
}

// Initials returns the one or two letter avatar monogram for a name.
func Initials(firstName, lastName string) string {
	var b strings.Builder
	if f := strings.TrimSpace(firstName); f != "" {
		b.WriteString(strings.ToUpper(f[:1]))
	}
	if l := strings.TrimSpace(lastName); l != "" {
		b.WriteString(strings.ToUpper(l[:1]))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
