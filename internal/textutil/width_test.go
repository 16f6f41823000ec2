package textutil

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"note.md", 7},
		{"日本", 4},
		{"é", 1},
	}
	for _, tt := range tests {
		if got := Width(tt.in); got != tt.want {
			t.Fatalf("Width(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "notes", 5, "notes"},
		{"cut", "notes.md", 6, "notes…"},
		{"zero", "notes", 0, ""},
		{"single cell", "notes", 1, "n"},
		{"wide runes", "日本語", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if w := Width(Truncate(tt.in, tt.max)); w > tt.max {
				t.Fatalf("width %d exceeds %d", w, tt.max)
			}
		})
	}
}

func TestFitPadsToWidth(t *testing.T) {
	if got := Fit("ab", 4); got != "ab  " {
		t.Fatalf("Fit = %q", got)
	}
	if got := Fit("abcdef", 4); got != "abc…" {
		t.Fatalf("Fit = %q", got)
	}
}
