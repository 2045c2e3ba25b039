package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":       true,
		"admin@quinela.com":     true,
		"Ana <ana@example.com>": false,
		"ana@localhost":         false,
		"not-an-email":          false,
		"":                      false,
		"two@@example.com":      false,
	}
	for email, want := range cases {
		if got := IsValidEmail(email); got != want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("goles123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{"matching password", "goles123", hash, true, false},
		{"different password", "goles124", hash, false, false},
		{"malformed hash", "goles123", "not-a-bcrypt-hash", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckPasswordHash(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPasswordHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("CheckPasswordHash() = %v, want %v", got, tt.want)
			}
		})
	}
}
