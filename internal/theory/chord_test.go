package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		name       string
		symbol     string
		degree     int
		quality    Quality
		alteration int
		extension  string
	}{
		{name: "major four", symbol: "IV", degree: 4, quality: QualityMajor},
		{name: "minor six", symbol: "vi", degree: 6, quality: QualityMinor},
		{name: "one", symbol: "I", degree: 1, quality: QualityMajor},
		{name: "minor two", symbol: "ii", degree: 2, quality: QualityMinor},
		{name: "three", symbol: "III", degree: 3, quality: QualityMajor},
		{name: "seven", symbol: "vii", degree: 7, quality: QualityMinor},
		{name: "dominant seventh", symbol: "V7", degree: 5, quality: QualityMajor, extension: "7"},
		{name: "suspension", symbol: "Vsus4", degree: 5, quality: QualityMajor, extension: "sus4"},
		{name: "major seventh", symbol: "IVmaj7", degree: 4, quality: QualityMajor, extension: "maj7"},
		{name: "slash chord", symbol: "I/3", degree: 1, quality: QualityMajor, extension: "/3"},
		{name: "borrowed flat seven", symbol: "bVII", degree: 7, quality: QualityMajor, alteration: -1},
		{name: "sharp four minor", symbol: "#iv7", degree: 4, quality: QualityMinor, alteration: 1, extension: "7"},
		{name: "double flat", symbol: "bbVI", degree: 6, quality: QualityMajor, alteration: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseChord(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.symbol, c.Symbol())
			assert.Equal(t, tt.symbol, c.String())
			assert.Equal(t, tt.degree, c.Degree())
			assert.Equal(t, tt.quality, c.Quality())
			assert.Equal(t, tt.alteration, c.Alteration())
			assert.Equal(t, tt.extension, c.Extension())
		})
	}
}

func TestParseChordMalformed(t *testing.T) {
	for _, symbol := range []string{"", "X", "b", "#", "Vi", "iV", "IIII", "I V", " I", "7", "m"} {
		t.Run(symbol, func(t *testing.T) {
			_, err := ParseChord(symbol)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedChord)
		})
	}
}

func TestChordEqualityIsBySymbol(t *testing.T) {
	assert.Equal(t, MustParseChord("IV"), MustParseChord("IV"))
	assert.True(t, MustParseChord("V7") == MustParseChord("V7"))
	assert.False(t, MustParseChord("V") == MustParseChord("V7"))
	assert.False(t, MustParseChord("IV") == MustParseChord("iv"))
}

func TestChordRenderInto(t *testing.T) {
	flat, err := GetColorScheme(FlatSchemeName)
	require.NoError(t, err)

	tests := []struct {
		name     string
		symbol   string
		key      string
		scheme   *ColorScheme
		expected string
	}{
		{name: "IV in Bb", symbol: "IV", key: "Bb", scheme: DefaultColorScheme(), expected: "Eb"},
		{name: "vi in A", symbol: "vi", key: "A", scheme: DefaultColorScheme(), expected: "F#m"},
		{name: "nil scheme means default", symbol: "IV", key: "Bb", expected: "Eb"},
		{name: "ii in F", symbol: "ii", key: "F", scheme: DefaultColorScheme(), expected: "Gm"},
		{name: "iii in E", symbol: "iii", key: "E", scheme: DefaultColorScheme(), expected: "G#m"},
		{name: "V7 in G", symbol: "V7", key: "G", scheme: DefaultColorScheme(), expected: "D7"},
		{name: "IVmaj7 in D", symbol: "IVmaj7", key: "D", scheme: DefaultColorScheme(), expected: "Gmaj7"},
		{name: "vii in Eb", symbol: "vii", key: "Eb", scheme: DefaultColorScheme(), expected: "Dm"},
		{name: "bVII in C", symbol: "bVII", key: "C", scheme: DefaultColorScheme(), expected: "Bb"},
		{name: "bVII in A keeps the letter", symbol: "bVII", key: "A", scheme: DefaultColorScheme(), expected: "G"},
		{name: "bIII in Bb", symbol: "bIII", key: "Bb", scheme: DefaultColorScheme(), expected: "Db"},
		{name: "#iv in C", symbol: "#iv", key: "C", scheme: DefaultColorScheme(), expected: "F#m"},
		{name: "V in F# forced flat", symbol: "V", key: "F#", scheme: flat, expected: "Db"},
		{name: "I in A# spelled with sharps", symbol: "I", key: "A#", scheme: SchemeAll(Sharp), expected: "A#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered, err := MustParseChord(tt.symbol).RenderInto(MustParseKey(tt.key), tt.scheme)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rendered)
		})
	}
}

func TestChordRenderIntoAlterationCap(t *testing.T) {
	// E written in flats is Fb, so three more flats would need four.
	_, err := MustParseChord("bbbI").RenderInto(MustParseKey("E"), SchemeAll(Flat))
	assert.ErrorIs(t, err, ErrInvalidKeyColor)

	rendered, err := MustParseChord("bbI").RenderInto(MustParseKey("E"), SchemeAll(Flat))
	require.NoError(t, err)
	assert.Equal(t, "Fbbb", rendered)
}

func TestZeroChordDoesNotRender(t *testing.T) {
	_, err := Chord{}.RenderInto(MustParseKey("C"), nil)
	assert.ErrorIs(t, err, ErrMalformedChord)
}
