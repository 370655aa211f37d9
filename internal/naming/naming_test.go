package naming

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"-f", true},
		{"--foo", true},
		{"--f", true},
		{"-ä", true},
		{"--foo-bar", true},
		{"", false},
		{"-", false},
		{"--", false},
		{"---foo", false},
		{"foo", false},
		{"-fo", false},
		{"--foo=bar", false},
		{"-=", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.name); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTarget(t *testing.T) {
	tests := []struct{ in, want string }{
		{"--foo", "foo"},
		{"-f", "f"},
		{"--foo-bar", "fooBar"},
		{"--foo--bar.baz", "fooBarBaz"},
		{"--FOO-BAR", "FOO_BAR"},
		{"--FOO-BAR-BAZ", "FOO_BAR_BAZ"},
		{"-X", "X"},
		{"--max-args2", "maxArgs2"},
	}
	for _, tt := range tests {
		if got := Target(tt.in); got != tt.want {
			t.Errorf("Target(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripDashes(t *testing.T) {
	if got := StripDashes("--mode"); got != "mode" {
		t.Fatalf("got %q", got)
	}
	if got := StripDashes("-m"); got != "m" {
		t.Fatalf("got %q", got)
	}
	if !IsLong("--x") || IsLong("-x") {
		t.Fatalf("IsLong mismatch")
	}
}
