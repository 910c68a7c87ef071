package language

import "testing"

func TestToISO1(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"fr", "fr"},
		{"fra", "fr"},
		{"fr-CA", "fr"},
		{"french", "fr"},
		{"English", "en"},
		{"EN", "en"},
		{"", ""},
		{"??", ""},
		{"not-a-language", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO1(tt.input); got != tt.want {
				t.Errorf("ToISO1(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("fr"); got != "French" {
		t.Fatalf("DisplayName(fr) = %q", got)
	}
	if got := DisplayName("bogus"); got != "bogus" {
		t.Fatalf("DisplayName(bogus) = %q", got)
	}
}
