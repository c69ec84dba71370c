package config

import (
	"slices"
	"testing"
)

func TestSplitTrimmed(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a , b,,c ", []string{"a", "b", "c"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		if got := splitTrimmed(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitTrimmed(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{DBUser: "u", DBPass: "p", DBHost: "h", DBPort: "5432", DBName: "pool", DBSSLMode: "disable"}
	if got, want := c.PostgresDSN(), "postgres://u:p@h:5432/pool?sslmode=disable"; got != want {
		t.Errorf("PostgresDSN() = %q, want %q", got, want)
	}

	c.DatabaseURL = "postgres://other"
	if got := c.PostgresDSN(); got != "postgres://other" {
		t.Errorf("DATABASE_URL not preferred: %q", got)
	}
}

func TestIsAdmin(t *testing.T) {
	c := &Config{AdminParticipants: []string{"Alice", "bob"}}
	for id, want := range map[string]bool{
		"alice": true,
		" BOB ": true,
		"carol": false,
		"":      false,
	} {
		if got := c.IsAdmin(id); got != want {
			t.Errorf("IsAdmin(%q) = %v, want %v", id, got, want)
		}
	}
}
