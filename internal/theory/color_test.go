package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultColorScheme(t *testing.T) {
	scheme, err := GetColorScheme("default")
	require.NoError(t, err)
	assert.Equal(t, DefaultSchemeName, scheme.Name())

	flats := []string{"F", "Bb", "Eb", "Ab", "Db"}
	sharps := []string{"C", "G", "D", "A", "E", "B", "F#"}

	for _, k := range flats {
		assert.Equal(t, Flat, scheme.ColorOf(MustParseKey(k).PitchClass()), k)
	}
	for _, k := range sharps {
		assert.Equal(t, Sharp, scheme.ColorOf(MustParseKey(k).PitchClass()), k)
	}
}

func TestSchemeAll(t *testing.T) {
	for pc := 0; pc < 12; pc++ {
		assert.Equal(t, Sharp, SchemeAll(Sharp).ColorOf(pc))
		assert.Equal(t, Flat, SchemeAll(Flat).ColorOf(pc))
	}
}

func TestColorOfNormalizesPitchClass(t *testing.T) {
	scheme := DefaultColorScheme()
	assert.Equal(t, scheme.ColorOf(1), scheme.ColorOf(13))
	assert.Equal(t, scheme.ColorOf(11), scheme.ColorOf(-1))
}

func TestGetUnknownColorScheme(t *testing.T) {
	_, err := GetColorScheme("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownColorScheme)
}

func TestRegistryWithExtraSchemes(t *testing.T) {
	registry, err := NewRegistry(SchemeDefinition{
		Name:     "worship",
		Fallback: Flat,
		Colors:   map[int]Color{MustParseKey("E").PitchClass(): Sharp},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"default", "flat", "sharp", "worship"}, registry.Names())

	worship, err := registry.Get("worship")
	require.NoError(t, err)
	assert.Equal(t, Sharp, worship.ColorOf(MustParseKey("E").PitchClass()))
	assert.Equal(t, Flat, worship.ColorOf(MustParseKey("G").PitchClass()))
	assert.Equal(t, Flat, worship.Fallback())

	table := worship.Table()
	assert.Equal(t, Sharp, table[7])
	assert.Equal(t, Flat, table[0])

	// Built-ins are untouched.
	_, err = GetColorScheme("worship")
	assert.ErrorIs(t, err, ErrUnknownColorScheme)
}

func TestRegistryRejectsUnnamedScheme(t *testing.T) {
	_, err := NewRegistry(SchemeDefinition{Name: "  "})
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		wantErr  bool
	}{
		{"sharp", Sharp, false},
		{"#", Sharp, false},
		{"FLAT", Flat, false},
		{"b", Flat, false},
		{"natural", Sharp, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestColorText(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("flat")))
	assert.Equal(t, Flat, c)

	text, err := Sharp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sharp", string(text))

	assert.Equal(t, "#", Sharp.Marker())
	assert.Equal(t, "b", Flat.Marker())
	assert.Equal(t, 1, Sharp.Sign())
	assert.Equal(t, -1, Flat.Sign())
}
