package theory

import (
	"fmt"
	"strings"
)

const pitchClasses = 12

// Pitch classes are counted from A so that C sits at 3, which is where the
// circle of fifths starts.
var (
	sharpNames = [pitchClasses]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}
	flatNames  = [pitchClasses]string{"A", "Bb", "B", "C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab"}
)

// Letter offsets from A in semitones
var naturalOffsets = map[byte]int{
	'A': 0, 'B': 2, 'C': 3, 'D': 5, 'E': 7, 'F': 8, 'G': 10,
}

// Key is the tonic of a song or section, stored as a pitch class.
type Key struct {
	pc int
}

// NewKey returns the key for a pitch class. Any integer is accepted and
// reduced mod 12.
func NewKey(pitchClass int) Key {
	return Key{pc: mod(pitchClass, pitchClasses)}
}

// ParseKey converts a note name like "Bb", "F#", "c" or "Cb" to a Key.
// Format: <letter A-G><accidentals?> where accidentals are any run of '#' or 'b'.
func ParseKey(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Key{}, fmt.Errorf("%w: empty key name", ErrMalformedKey)
	}

	letter := strings.ToUpper(name[:1])[0]
	offset, ok := naturalOffsets[letter]
	if !ok {
		return Key{}, fmt.Errorf("%w: invalid note letter %q", ErrMalformedKey, name[:1])
	}

	for _, r := range name[1:] {
		switch r {
		case '#':
			offset++
		case 'b':
			offset--
		default:
			return Key{}, fmt.Errorf("%w: invalid accidental %q in %q", ErrMalformedKey, r, name)
		}
	}

	return NewKey(offset), nil
}

// MustParseKey is like ParseKey but panics on error. Intended for tables and tests.
func MustParseKey(name string) Key {
	k, err := ParseKey(name)
	if err != nil {
		panic(err)
	}
	return k
}

// PitchClass returns the key's pitch class in [0,12).
func (k Key) PitchClass() int {
	return k.pc
}

// Transpose shifts the key by a number of semitones (negative moves down).
func (k Key) Transpose(semitones int) Key {
	return NewKey(k.pc + semitones)
}

// Name spells the key in the given color, e.g. Bb for Flat and A# for Sharp.
func (k Key) Name(color Color) string {
	if color == Flat {
		return flatNames[k.pc]
	}
	return sharpNames[k.pc]
}

// Natural returns the letter the key's major scale starts on when written with
// accidentals of the given color. It agrees with Name for the usual key
// signatures; for the others it follows the circle of fifths, so A written in
// flats starts on B (Bbb) and F written in sharps starts on E (E#).
func (k Key) Natural(color Color) string {
	return naturals[tonicLetter(k, color)]
}

func (k Key) String() string {
	return k.Name(DefaultColorScheme().ColorOf(k.pc))
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
