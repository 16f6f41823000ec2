package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDelimitedList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "Archive", []string{"Archive"}},
		{"trims and drops blanks", " Archive , ,Templates,, ", []string{"Archive", "Templates"}},
		{"dedupes", "png, pdf, png", []string{"png", "pdf"}},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDelimitedList(tt.raw))
		})
	}
}

func TestSerializeList(t *testing.T) {
	assert.Equal(t, "", SerializeList(nil))
	assert.Equal(t, "Archive", SerializeList([]string{"Archive"}))
	assert.Equal(t, "Archive, Templates", SerializeList([]string{" Archive", "", "Templates "}))
}

func TestDelimitedListRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"a,b",
		" a , b ,, c ",
		"x, x, y",
		"Daily Notes, Templates/Meeting, *.excalidraw",
	}
	for _, raw := range inputs {
		once := ParseDelimitedList(raw)
		assert.Equal(t, once, ParseDelimitedList(SerializeList(once)), "round trip of %q", raw)
	}

	sets := [][]string{
		{"Archive"},
		{"Archive", "Templates", "Daily Notes"},
		{"png", "pdf"},
	}
	for _, set := range sets {
		assert.Equal(t, set, ParseDelimitedList(SerializeList(set)))
	}
}
