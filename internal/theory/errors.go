package theory

import "errors"

var (
	// ErrInvalidKeyColor means a key cannot be spelled in the requested color
	// without exceeding three accidentals on a single note.
	ErrInvalidKeyColor = errors.New("invalid key/color combination")

	// ErrUnknownColorScheme is returned when a scheme name is not registered.
	ErrUnknownColorScheme = errors.New("color scheme not found")

	ErrMalformedChord   = errors.New("malformed chord symbol")
	ErrEmptyProgression = errors.New("chord progression is empty")
	ErrMalformedKey     = errors.New("malformed key name")
	ErrUnknownMode      = errors.New("unknown mode")
	ErrUnknownColor     = errors.New("unknown color")
)
