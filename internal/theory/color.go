package theory

import (
	"fmt"
	"sort"
	"strings"
)

// Color is the accidental convention used to spell notes.
type Color int

const (
	Sharp Color = iota
	Flat
)

// Built-in scheme names
const (
	DefaultSchemeName = "default"
	SharpSchemeName   = "sharp"
	FlatSchemeName    = "flat"
)

// ParseColor accepts "sharp"/"#" and "flat"/"b".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sharp", "#":
		return Sharp, nil
	case "flat", "b":
		return Flat, nil
	}
	return Sharp, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// Marker is the string appended to a letter for each accidental.
func (c Color) Marker() string {
	if c == Flat {
		return "b"
	}
	return "#"
}

// Sign is the direction one accidental moves a note: +1 for sharps, -1 for flats.
func (c Color) Sign() int {
	if c == Flat {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c == Flat {
		return "flat"
	}
	return "sharp"
}

// MarshalText lets colors appear as "sharp"/"flat" in JSON and TOML.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ColorScheme decides which color each key is spelled in. Keys the scheme does
// not list use the fallback color.
type ColorScheme struct {
	name     string
	colors   map[int]Color
	fallback Color
}

// SchemeDefinition describes a color scheme before it is frozen into a registry.
type SchemeDefinition struct {
	Name     string
	Fallback Color
	Colors   map[int]Color
}

func newColorScheme(def SchemeDefinition) *ColorScheme {
	colors := make(map[int]Color, len(def.Colors))
	for pc, c := range def.Colors {
		colors[mod(pc, pitchClasses)] = c
	}
	return &ColorScheme{name: def.Name, colors: colors, fallback: def.Fallback}
}

// Name returns the registered name of the scheme.
func (s *ColorScheme) Name() string {
	return s.name
}

// ColorOf returns the color used to spell the given pitch class.
func (s *ColorScheme) ColorOf(pitchClass int) Color {
	if c, ok := s.colors[mod(pitchClass, pitchClasses)]; ok {
		return c
	}
	return s.fallback
}

// Fallback is the color for keys the scheme does not special-case.
func (s *ColorScheme) Fallback() Color {
	return s.fallback
}

// Table lists the color for every pitch class, indexed by pitch class.
func (s *ColorScheme) Table() [pitchClasses]Color {
	var t [pitchClasses]Color
	for pc := range t {
		t[pc] = s.ColorOf(pc)
	}
	return t
}

// Registry holds named color schemes. It is built once and never modified, so
// it can be shared between goroutines without locking.
type Registry struct {
	schemes map[string]*ColorScheme
}

// NewRegistry returns a registry with the built-in schemes plus any extra
// definitions. An extra definition with a built-in name replaces the built-in.
func NewRegistry(extra ...SchemeDefinition) (*Registry, error) {
	r := &Registry{schemes: make(map[string]*ColorScheme)}
	for _, def := range builtinSchemes() {
		r.schemes[def.Name] = newColorScheme(def)
	}
	for _, def := range extra {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			return nil, fmt.Errorf("color scheme definition is missing a name")
		}
		def.Name = name
		r.schemes[name] = newColorScheme(def)
	}
	return r, nil
}

// Get looks up a scheme by name.
func (r *Registry) Get(name string) (*ColorScheme, error) {
	s, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorScheme, name)
	}
	return s, nil
}

// Names returns the registered scheme names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtinRegistry, _ = NewRegistry()

// GetColorScheme looks up one of the built-in schemes.
func GetColorScheme(name string) (*ColorScheme, error) {
	return builtinRegistry.Get(name)
}

// DefaultColorScheme returns the "default" scheme.
func DefaultColorScheme() *ColorScheme {
	return builtinRegistry.schemes[DefaultSchemeName]
}

// SchemeAll returns the built-in scheme that spells every key in one color.
func SchemeAll(color Color) *ColorScheme {
	if color == Flat {
		return builtinRegistry.schemes[FlatSchemeName]
	}
	return builtinRegistry.schemes[SharpSchemeName]
}

// The default scheme follows common key signatures: F, Bb, Eb, Ab and Db are
// written with flats, everything else with sharps.
func builtinSchemes() []SchemeDefinition {
	defaultFlats := map[int]Color{}
	for _, name := range []string{"F", "Bb", "Eb", "Ab", "Db"} {
		defaultFlats[MustParseKey(name).PitchClass()] = Flat
	}

	return []SchemeDefinition{
		{Name: DefaultSchemeName, Fallback: Sharp, Colors: defaultFlats},
		{Name: SharpSchemeName, Fallback: Sharp},
		{Name: FlatSchemeName, Fallback: Flat},
	}
}
