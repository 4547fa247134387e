package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Conceptual-Machines/magda-charts/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScaleCommand(t *testing.T) {
	t.Setenv("COLOR_SCHEMES_FILE", "")

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"default", []string{"scale", "D"}, "D E F# G A B C#\n"},
		{"flat key", []string{"scale", "Ab"}, "Ab Bb C Db Eb F G\n"},
		{"mode", []string{"scale", "E", "--mode", "phrygian"}, "E F G A B C D\n"},
		{"color", []string{"scale", "F#", "--color", "flat"}, "Gb Ab Bb Cb Db Eb F\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	_, err := execute(t, "scale", "Q")
	assert.ErrorIs(t, err, theory.ErrMalformedKey)
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("COLOR_SCHEMES_FILE", "")

	out, err := execute(t, "render", "C", "I", "V", "vi", "IV")
	require.NoError(t, err)
	assert.Equal(t, "C G Am F\n", out)

	out, err = execute(t, "render", "Bb", "I I V IV IV", "--compact", "--structure")
	require.NoError(t, err)
	assert.Equal(t, "Bb F Eb\n2 1 2\n", out)

	out, err = execute(t, "render", "C", "I", "IV", "--modulation", "5")
	require.NoError(t, err)
	assert.Equal(t, "F Bb\n", out)

	_, err = execute(t, "render", "C", "I", "nope")
	assert.ErrorIs(t, err, theory.ErrMalformedChord)

	_, err = execute(t, "render", "C")
	assert.Error(t, err)
}

func TestSchemesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemes.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[scheme]]
name = "worship"
fallback = "sharp"
flat = ["F", "Bb", "Eb", "Ab", "Db", "Gb"]
`), 0o600))
	t.Setenv("COLOR_SCHEMES_FILE", path)

	out, err := execute(t, "schemes")
	require.NoError(t, err)
	assert.Contains(t, out, "default\tfallback=sharp\tflat=[Bb Db Eb F Ab]\n")
	assert.Contains(t, out, "sharp\tfallback=sharp\tflat=[]\n")
	assert.Contains(t, out, "worship\tfallback=sharp\tflat=[Bb Db Eb F Gb Ab]\n")

	out, err = execute(t, "render", "F#", "I", "IV", "--scheme", "worship")
	require.NoError(t, err)
	assert.Equal(t, "Gb Cb\n", out)
}

func TestFilterSensitiveHeaders(t *testing.T) {
	filtered := filterSensitiveHeaders(map[string]string{
		"Authorization": "Bearer x",
		"cookie":        "a=b",
		"Content-Type":  "application/json",
	})
	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["cookie"])
	assert.Equal(t, "application/json", filtered["Content-Type"])
}
