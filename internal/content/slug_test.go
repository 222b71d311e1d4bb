package content

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello, World! Launch", "hello-world-launch"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"---Already--Hyphenated---", "already-hyphenated"},
		{"AI & Automation: 2025 Edition", "ai-automation-2025-edition"},
		{"Café Menu", "caf-menu"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
