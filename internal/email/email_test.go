package email

import (
	"strings"
	"testing"
)

func TestIsEmail(t *testing.T) {
	cases := map[string]bool{
		"sdaf@gmail.com":                 true,
		"first.last+tag@sub.example.org": true,
		"x@a-b.io":                       true,
		"":                               false,
		"not-an-email":                   false,
		"@gmail.com":                     false,
		"sdaf@":                          false,
		"sdaf@localhost":                 false,
		"sdaf@gmail.c":                   false,
		"sdaf@gmail.123":                 false,
		"sdaf@-gmail.com":                false,
		"sdaf@gmail-.com":                false,
		"sdaf@gm_ail.com":                false,
		"sdaf@gmail..com":                false,
		"Joe <joe@example.com>":          false,
		" sdaf@gmail.com":                false,
		"two@@example.com":               false,
	}
	for in, want := range cases {
		if got := IsEmail(in); got != want {
			t.Fatalf("IsEmail(%q) = %v, want %v", in, got, want)
		}
	}
	if IsEmail(strings.Repeat("a", 65) + "@example.com") {
		t.Fatalf("local part longer than 64 bytes must be rejected")
	}
}
