package theory

import (
	"fmt"
	"strings"
	"unicode"
)

// Quality is the triad quality encoded by the case of the numeral.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
)

func (q Quality) String() string {
	if q == QualityMinor {
		return "minor"
	}
	return "major"
}

// Longest numerals first so "IV" is not read as "I" followed by "V".
var numerals = []struct {
	text   string
	degree int
}{
	{"VII", 7}, {"III", 3}, {"VI", 6}, {"IV", 4}, {"II", 2}, {"V", 5}, {"I", 1},
}

// Chord is a scale-relative chord symbol such as "IV", "vi", "V7" or "bVII".
// Two chords are equal when their symbols are equal.
type Chord struct {
	symbol     string
	degree     int
	quality    Quality
	alteration int
	extension  string
}

// ParseChord parses a relative chord symbol.
//
// Format: <alterations?><numeral><extension?> where alterations are any run of
// 'b' or '#', the numeral is I-VII in upper case (major) or i-vii in lower case
// (minor), and the extension is kept verbatim.
func ParseChord(symbol string) (Chord, error) {
	if symbol == "" {
		return Chord{}, fmt.Errorf("%w: empty symbol", ErrMalformedChord)
	}
	if strings.IndexFunc(symbol, unicode.IsSpace) >= 0 {
		return Chord{}, fmt.Errorf("%w: %q contains whitespace", ErrMalformedChord, symbol)
	}

	c := Chord{symbol: symbol}
	rest := symbol

	for len(rest) > 0 && (rest[0] == 'b' || rest[0] == '#') {
		if rest[0] == 'b' {
			c.alteration--
		} else {
			c.alteration++
		}
		rest = rest[1:]
	}

	degree, quality, n := matchNumeral(rest)
	if n == 0 {
		return Chord{}, fmt.Errorf("%w: %q has no roman numeral", ErrMalformedChord, symbol)
	}
	c.degree = degree
	c.quality = quality
	c.extension = rest[n:]

	// Anything numeral-like left over means mixed case or an invalid numeral.
	if c.extension != "" && strings.ContainsRune("IViv", rune(c.extension[0])) {
		return Chord{}, fmt.Errorf("%w: %q has an invalid roman numeral", ErrMalformedChord, symbol)
	}

	return c, nil
}

func matchNumeral(s string) (degree int, quality Quality, length int) {
	for _, num := range numerals {
		if strings.HasPrefix(s, num.text) {
			return num.degree, QualityMajor, len(num.text)
		}
		if strings.HasPrefix(s, strings.ToLower(num.text)) {
			return num.degree, QualityMinor, len(num.text)
		}
	}
	return 0, QualityMajor, 0
}

// MustParseChord is like ParseChord but panics on error.
func MustParseChord(symbol string) Chord {
	c, err := ParseChord(symbol)
	if err != nil {
		panic(err)
	}
	return c
}

// Symbol returns the relative symbol the chord was parsed from.
func (c Chord) Symbol() string { return c.symbol }

// Degree returns the scale degree, 1 through 7.
func (c Chord) Degree() int { return c.degree }

func (c Chord) Quality() Quality { return c.quality }

// Alteration is the chromatic shift applied to the degree in semitones (bVII is -1).
func (c Chord) Alteration() int { return c.alteration }

// Extension is the text after the numeral, passed through when rendering.
func (c Chord) Extension() string { return c.extension }

func (c Chord) String() string { return c.symbol }

// RenderInto turns the chord into an absolute chord symbol for key, spelled in
// the color the scheme picks for that key.
func (c Chord) RenderInto(key Key, scheme *ColorScheme) (string, error) {
	if c.degree < 1 || c.degree > scaleLength {
		return "", fmt.Errorf("%w: zero chord", ErrMalformedChord)
	}
	if scheme == nil {
		scheme = DefaultColorScheme()
	}
	color := scheme.ColorOf(key.PitchClass())

	scale, err := GenerateScale(key, color, Major)
	if err != nil {
		return "", fmt.Errorf("render %s in %s: %w", c.symbol, key.Name(color), err)
	}

	root, err := alter(scale[c.degree-1], color, c.alteration)
	if err != nil {
		return "", fmt.Errorf("render %s in %s: %w", c.symbol, key.Name(color), err)
	}

	var b strings.Builder
	b.WriteString(root)
	if c.quality == QualityMinor {
		b.WriteString("m")
	}
	b.WriteString(c.extension)
	return b.String(), nil
}

// alter moves a note by semitones while keeping its letter, so bVII of A is G
// rather than F##.
func alter(note string, color Color, semitones int) (string, error) {
	if semitones == 0 {
		return note, nil
	}

	letter := note[:1]
	count := strings.Count(note[1:], color.Marker())*color.Sign() + semitones
	if abs(count) > maxAccidentals {
		return "", fmt.Errorf("%w: %s altered by %d", ErrInvalidKeyColor, note, semitones)
	}

	marker := Sharp.Marker()
	if count < 0 {
		marker = Flat.Marker()
	}
	return letter + strings.Repeat(marker, abs(count)), nil
}
