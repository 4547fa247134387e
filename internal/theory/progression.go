package theory

import (
	"fmt"
	"sync"
)

// Progression is an ordered sequence of relative chords. Progressions are
// shared between sections and songs and never change after construction, so a
// single instance may be used from many goroutines.
type Progression struct {
	chords []Chord

	repeatOnce      sync.Once
	repeatStructure []int
}

// NewProgression parses the symbols into a progression. Every symbol is parsed
// up front so malformed input fails here rather than at render time.
func NewProgression(symbols []string) (*Progression, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyProgression
	}

	chords := make([]Chord, len(symbols))
	for i, sym := range symbols {
		c, err := ParseChord(sym)
		if err != nil {
			return nil, fmt.Errorf("chord %d: %w", i+1, err)
		}
		chords[i] = c
	}
	return &Progression{chords: chords}, nil
}

// Len returns the number of chords in the progression.
func (p *Progression) Len() int {
	return len(p.chords)
}

// Symbols returns the relative symbols in order.
func (p *Progression) Symbols() []string {
	out := make([]string, len(p.chords))
	for i, c := range p.chords {
		out[i] = c.Symbol()
	}
	return out
}

// Chords returns a copy of the parsed chords.
func (p *Progression) Chords() []Chord {
	return append([]Chord(nil), p.chords...)
}

// RenderInto renders every chord into key using scheme. A nil scheme means the
// default scheme.
func (p *Progression) RenderInto(key Key, scheme *ColorScheme) ([]string, error) {
	out := make([]string, len(p.chords))
	for i, c := range p.chords {
		rendered, err := c.RenderInto(key, scheme)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

// RenderCompact renders one chord per run of repeated chords. Pair the result
// with RepeatStructure to recover the full progression.
func (p *Progression) RenderCompact(key Key, scheme *ColorScheme) ([]string, error) {
	runs := p.RepeatStructure()
	out := make([]string, 0, len(runs))
	pos := 0
	for _, n := range runs {
		rendered, err := p.chords[pos].RenderInto(key, scheme)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
		pos += n
	}
	return out, nil
}

// RepeatStructure returns how many times each chord repeats back to back, e.g.
// [I I IV V] gives [2 1 1]. Chords are compared by relative symbol, so two
// chords that happen to render the same are still separate runs.
//
// The result is computed on first use and cached.
func (p *Progression) RepeatStructure() []int {
	p.repeatOnce.Do(func() {
		var runs []int
		for i, c := range p.chords {
			if i > 0 && c == p.chords[i-1] {
				runs[len(runs)-1]++
				continue
			}
			runs = append(runs, 1)
		}
		p.repeatStructure = runs
	})
	return append([]int(nil), p.repeatStructure...)
}
