package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/Conceptual-Machines/magda-charts/internal/theory"
)

// schemeFile is the TOML layout of a color schemes file:
//
//	[[scheme]]
//	name = "worship"
//	fallback = "sharp"
//	flat = ["F", "Bb", "Eb", "Ab", "Db", "Gb"]
type schemeFile struct {
	Schemes []schemeEntry `toml:"scheme"`
}

type schemeEntry struct {
	Name     string       `toml:"name"`
	Fallback theory.Color `toml:"fallback"`
	Sharp    []string     `toml:"sharp"`
	Flat     []string     `toml:"flat"`
}

// LoadColorSchemes reads extra color scheme definitions from a TOML file.
// An empty path returns no definitions.
func LoadColorSchemes(path string) ([]theory.SchemeDefinition, error) {
	if path == "" {
		return nil, nil
	}

	var file schemeFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read color schemes from %s: %w", path, err)
	}
	return file.definitions()
}

// ParseColorSchemes is LoadColorSchemes for an in-memory document.
func ParseColorSchemes(data string) ([]theory.SchemeDefinition, error) {
	var file schemeFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse color schemes: %w", err)
	}
	return file.definitions()
}

func (f schemeFile) definitions() ([]theory.SchemeDefinition, error) {
	defs := make([]theory.SchemeDefinition, 0, len(f.Schemes))
	for _, entry := range f.Schemes {
		def := theory.SchemeDefinition{
			Name:     entry.Name,
			Fallback: entry.Fallback,
			Colors:   make(map[int]theory.Color),
		}
		if err := addKeys(def.Colors, entry.Sharp, theory.Sharp); err != nil {
			return nil, fmt.Errorf("scheme %q: %w", entry.Name, err)
		}
		if err := addKeys(def.Colors, entry.Flat, theory.Flat); err != nil {
			return nil, fmt.Errorf("scheme %q: %w", entry.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func addKeys(colors map[int]theory.Color, names []string, color theory.Color) error {
	for _, name := range names {
		key, err := theory.ParseKey(name)
		if err != nil {
			return err
		}
		if existing, ok := colors[key.PitchClass()]; ok && existing != color {
			return fmt.Errorf("key %s is listed as both sharp and flat", name)
		}
		colors[key.PitchClass()] = color
	}
	return nil
}
