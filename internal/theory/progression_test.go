package theory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgression(t *testing.T) {
	p, err := NewProgression([]string{"I", "V", "vi", "IV"})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, []string{"I", "V", "vi", "IV"}, p.Symbols())
	assert.Equal(t, MustParseChord("vi"), p.Chords()[2])
}

func TestNewProgressionErrors(t *testing.T) {
	_, err := NewProgression(nil)
	assert.ErrorIs(t, err, ErrEmptyProgression)

	_, err = NewProgression([]string{})
	assert.ErrorIs(t, err, ErrEmptyProgression)

	_, err = NewProgression([]string{"I", "Q", "V"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedChord)
	assert.Contains(t, err.Error(), "chord 2")
}

func TestProgressionRenderInto(t *testing.T) {
	bb := MustParseKey("Bb")

	tests := []struct {
		name     string
		symbols  []string
		key      Key
		expected []string
	}{
		{
			name:     "I V vi IV in Bb",
			symbols:  []string{"I", "V", "vi", "IV"},
			key:      bb,
			expected: []string{"Bb", "F", "Gm", "Eb"},
		},
		{
			name:     "modulated up a whole step",
			symbols:  []string{"I", "V", "vi", "IV"},
			key:      bb.Transpose(2),
			expected: []string{"C", "G", "Am", "F"},
		},
		{
			name:     "repeats are kept",
			symbols:  []string{"I", "I", "V", "V", "vi", "V", "IV", "IV"},
			key:      bb,
			expected: []string{"Bb", "Bb", "F", "F", "Gm", "F", "Eb", "Eb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProgression(tt.symbols)
			require.NoError(t, err)

			rendered, err := p.RenderInto(tt.key, DefaultColorScheme())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rendered)

			again, err := p.RenderInto(tt.key, nil)
			require.NoError(t, err)
			assert.Equal(t, rendered, again)
		})
	}
}

func TestProgressionRenderCompact(t *testing.T) {
	p, err := NewProgression([]string{"I", "V", "IV", "IV"})
	require.NoError(t, err)

	compact, err := p.RenderCompact(MustParseKey("Bb"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bb", "F", "Eb"}, compact)
	assert.Equal(t, []int{1, 1, 2}, p.RepeatStructure())
}

func TestRepeatStructure(t *testing.T) {
	tests := []struct {
		name     string
		symbols  []string
		expected []int
	}{
		{name: "leading repeat", symbols: []string{"I", "I", "IV", "V"}, expected: []int{2, 1, 1}},
		{name: "no repeats", symbols: []string{"I", "V", "vi", "IV"}, expected: []int{1, 1, 1, 1}},
		{name: "single chord", symbols: []string{"I"}, expected: []int{1}},
		{name: "all the same", symbols: []string{"V", "V", "V"}, expected: []int{3}},
		{name: "runs split by another chord", symbols: []string{"I", "I", "V", "V", "vi", "V", "IV", "IV"}, expected: []int{2, 2, 1, 1, 2}},
		{name: "extension makes a different chord", symbols: []string{"V", "V7", "V7"}, expected: []int{1, 2}},
		{name: "same sound different symbol", symbols: []string{"bVII", "VII", "vii"}, expected: []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProgression(tt.symbols)
			require.NoError(t, err)

			structure := p.RepeatStructure()
			assert.Equal(t, tt.expected, structure)

			sum := 0
			for _, n := range structure {
				sum += n
			}
			assert.Equal(t, p.Len(), sum)
		})
	}
}

func TestRepeatStructureIsACopy(t *testing.T) {
	p, err := NewProgression([]string{"I", "I", "IV", "V"})
	require.NoError(t, err)

	first := p.RepeatStructure()
	first[0] = 99
	assert.Equal(t, []int{2, 1, 1}, p.RepeatStructure())
}

func TestProgressionConcurrentUse(t *testing.T) {
	p, err := NewProgression([]string{"I", "I", "V", "vi", "vi", "IV"})
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	results := make([][]int, workers)
	renders := make([][]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.RepeatStructure()
			renders[i], _ = p.RenderInto(MustParseKey("G"), nil)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, []int{2, 1, 2, 1}, results[i])
		assert.Equal(t, []string{"G", "G", "D", "Em", "Em", "C"}, renders[i])
	}
}
