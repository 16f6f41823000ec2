package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// Short labels for the invisible runes most likely to appear in file names.
var formatLabels = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeName makes a file or folder name safe to print on a terminal.
// Control characters become '?' and invisible formatting runes are
// replaced by a bracketed label so a name cannot reorder or hide text.
func SanitizeName(name string) string {
	if !needsSanitizing(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			b.WriteString(formatLabel(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

func formatLabel(r rune) string {
	if label, ok := formatLabels[r]; ok {
		return "⟪" + label + "⟫"
	}
	return fmt.Sprintf("⟪U+%04X⟫", r)
}
