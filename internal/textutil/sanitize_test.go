package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeNameLeavesPlainNames(t *testing.T) {
	for _, name := range []string{"Daily.md", "zażółć.md", "日本語ノート.md", ""} {
		if got := SanitizeName(name); got != name {
			t.Fatalf("SanitizeName(%q) = %q, want unchanged", name, got)
		}
	}
}

func TestSanitizeNameReplacesControls(t *testing.T) {
	got := SanitizeName("bad\x1b[31m\nname")
	if got != "bad?[31m name" {
		t.Fatalf("SanitizeName = %q, want %q", got, "bad?[31m name")
	}
}

func TestSanitizeNameLabelsFormattingRunes(t *testing.T) {
	got := SanitizeName("a\u202eb\u200bc")
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("formatting runes left in %q", got)
	}
	if got != "a⟪RLO⟫b⟪ZWSP⟫c" {
		t.Fatalf("SanitizeName = %q", got)
	}
}

func TestSanitizeNameLabelsUnknownFormatRune(t *testing.T) {
	// U+2061 FUNCTION APPLICATION is Cf but has no short label.
	got := SanitizeName("x\u2061y")
	if got != "x⟪U+2061⟫y" {
		t.Fatalf("SanitizeName = %q", got)
	}
}
