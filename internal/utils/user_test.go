package utils

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", "Anonymous"},
		{"  ", "  ", "Anonymous"},
	}
	for _, c := range cases {
		if got := DisplayName(c.first, c.last); got != c.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "AL"},
		{"ada", "lovelace", "AL"},
		{"Ada", "", "A"},
		{"", "", "?"},
	}
	for _, c := range cases {
		if got := Initials(c.first, c.last); got != c.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}
