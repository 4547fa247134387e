package theory

import (
	"fmt"
	"strings"
)

const (
	scaleLength    = 7
	maxAccidentals = 3
)

// Scale holds the absolute note symbol for each step, tonic first.
type Scale [scaleLength]string

// The white notes. A major scale is built by rotating this list to start on the
// tonic and then adding accidentals.
var naturals = [scaleLength]string{"A", "B", "C", "D", "E", "F", "G"}

// circleOfFifths lists pitch classes in key-signature order for a color. A
// key's index is the number of accidentals its major scale carries.
var circleOfFifths = map[Color][pitchClasses]int{
	Flat:  fifthsOrder(-7),
	Sharp: fifthsOrder(7),
}

// Each step around the circle moves the tonic letter up a fifth (4 letters)
// for sharps or up a fourth (3 letters) for flats, starting from C.
var letterStep = map[Color]int{
	Flat:  3,
	Sharp: 4,
}

const cLetter = 2

// slotRecurrence drives accidentalSlot for each color.
var slotRecurrence = map[Color]struct{ offset, step int }{
	Flat:  {offset: 3, step: 4},
	Sharp: {offset: 6, step: 3},
}

func fifthsOrder(step int) [pitchClasses]int {
	var order [pitchClasses]int
	for n := range order {
		order[n] = mod(3+step*n, pitchClasses)
	}
	return order
}

// accidentalSlot returns the scale step (counted from the tonic) that receives
// the nth accidental. Walking the circle of fifths with it adds flats in the
// order B E A D G C F and sharps in the order F C G D A E B.
func accidentalSlot(color Color, n int) int {
	r := slotRecurrence[color]
	return mod(r.offset+r.step*n, scaleLength)
}

// Mode is one of the seven modern modes.
type Mode string

const (
	Major      Mode = "major"
	Minor      Mode = "minor"
	Ionian     Mode = "ionian"
	Dorian     Mode = "dorian"
	Phrygian   Mode = "phrygian"
	Lydian     Mode = "lydian"
	Mixolydian Mode = "mixolydian"
	Aeolian    Mode = "aeolian"
	Locrian    Mode = "locrian"
)

// modeShift is the semitone distance from a mode's tonic down to the tonic of
// the major scale that shares its notes.
var modeShift = map[Mode]int{
	Major:      0,
	Ionian:     0,
	Dorian:     -2,
	Phrygian:   -4,
	Lydian:     -5,
	Mixolydian: -7,
	Minor:      -9,
	Aeolian:    -9,
	Locrian:    -11,
}

// ParseMode accepts any mode name, case-insensitively. An empty string is major.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Major, nil
	}
	m := Mode(s)
	if _, ok := modeShift[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Shift returns the mode's semitone shift from its relative major.
func (m Mode) Shift() int {
	return modeShift[m]
}

// GenerateScale builds the seven-note scale of key in the given color and mode.
//
// Modes other than major are derived from the relative major: the major scale
// of the transposed key is rotated until the mode's tonic comes first.
func GenerateScale(key Key, color Color, mode Mode) (Scale, error) {
	shift, ok := modeShift[mode]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if shift == 0 {
		return majorScale(key, color)
	}

	scale, err := majorScale(key.Transpose(shift), color)
	if err != nil {
		return Scale{}, err
	}
	// (|shift|+1)/2 turns the semitone shift into a scale-step distance; it
	// holds for every shift in the mode table.
	return RotateLeft(scale, (abs(shift)+1)/2), nil
}

func majorScale(key Key, color Color) (Scale, error) {
	naturalID := tonicLetter(key, color)

	accidentals, err := scaleAccidentals(accidentalCount(key, color), color)
	if err != nil {
		return Scale{}, fmt.Errorf("%s major in %s: %w", key.Name(color), color, err)
	}

	var scale Scale
	for step := range scale {
		scale[step] = naturals[(naturalID+step)%scaleLength] + strings.Repeat(color.Marker(), abs(accidentals[step]))
	}
	return scale, nil
}

func accidentalCount(key Key, color Color) int {
	for n, pc := range circleOfFifths[color] {
		if pc == key.PitchClass() {
			return n
		}
	}
	// Both orderings visit all twelve pitch classes.
	panic(fmt.Sprintf("pitch class %d missing from circle of fifths", key.PitchClass()))
}

func tonicLetter(key Key, color Color) int {
	return (cLetter + letterStep[color]*accidentalCount(key, color)) % scaleLength
}

// scaleAccidentals applies count accidentals to an all-natural scale.
func scaleAccidentals(count int, color Color) ([scaleLength]int, error) {
	var accidentals [scaleLength]int
	for n := 0; n < count; n++ {
		accidentals[accidentalSlot(color, n)] += color.Sign()
	}
	return accidentals, checkAccidentals(accidentals)
}

func checkAccidentals(accidentals [scaleLength]int) error {
	for step, n := range accidentals {
		if abs(n) > maxAccidentals {
			return fmt.Errorf("%w: step %d needs %d accidentals", ErrInvalidKeyColor, step+1, abs(n))
		}
	}
	return nil
}

// RotateLeft moves the first steps notes to the end, keeping their order.
func RotateLeft(scale Scale, steps int) Scale {
	var out Scale
	for i := range out {
		out[i] = scale[mod(i+steps, scaleLength)]
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
