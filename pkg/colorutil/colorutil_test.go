package colorutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	valid := []string{"#fff", "#FFF", "#abc123", "#000000", "#DC2626"}
	for _, s := range valid {
		require.True(t, IsValid(s), "expected %q to be valid", s)
	}

	invalid := []string{"", "fff", "#ffff", "#gggggg", "#12345", "#1234567", "red"}
	for _, s := range invalid {
		require.False(t, IsValid(s), "expected %q to be invalid", s)
	}
}

func TestZeroFractionIsIdentity(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"#000000", "#FFFFFF", "#DC2626", "#1E40AF"} {
		require.Equal(t, c, Darken(c, 0))
		require.Equal(t, c, Lighten(c, 0))
	}
}

func TestDarkenLighten(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#000000", Darken("#000000", 0.5))
	require.Equal(t, "#FFFFFF", Lighten("#FFFFFF", 0.5))
	require.Equal(t, "#808080", Darken("#FFFFFF", 0.498))
	require.Equal(t, "#000000", Darken("#FFFFFF", 1))
	require.Equal(t, "#FFFFFF", Lighten("#000000", 1))
}

func TestRoundTripAlwaysValid(t *testing.T) {
	t.Parallel()

	colors := []string{"#000000", "#FFFFFF", "#DC2626", "#059669", "#7C3AED"}
	fractions := []float64{0, 0.1, 0.25, 0.5, 0.9, 1}
	for _, c := range colors {
		for _, f := range fractions {
			out := Lighten(Darken(c, f), f)
			require.True(t, IsValid(out), "round trip of %s by %v produced %q", c, f, out)
		}
	}
}
