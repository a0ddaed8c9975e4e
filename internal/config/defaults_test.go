package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgesite/forgesite/pkg/colorutil"
)

func TestUnknownBusinessTypeFallsBack(t *testing.T) {
	t.Parallel()

	fallback := DefaultsFor(FallbackBusinessType)
	for _, key := range []string{"", "florist", "space-travel"} {
		require.Equal(t, fallback, DefaultsFor(key), "key %q", key)
	}
}

func TestRestaurantDefaults(t *testing.T) {
	t.Parallel()

	d := DefaultsFor("restaurant")
	require.Equal(t, "#DC2626", d.Colors.Primary)
	require.Len(t, d.Services, 3)
	require.True(t, d.Features.Blog)
}

func TestBusinessDefaultsHaveNoBlog(t *testing.T) {
	t.Parallel()

	require.False(t, DefaultsFor("business").Features.Blog)
}

func TestEveryBusinessTypeIsComplete(t *testing.T) {
	t.Parallel()

	for _, key := range KnownBusinessTypes() {
		d := DefaultsFor(key)
		require.NotEmpty(t, d.Terminology, "terminology for %s", key)
		require.NotEmpty(t, d.Services, "services for %s", key)
		require.True(t, colorutil.IsValid(d.Colors.Primary), "primary for %s", key)
		require.True(t, colorutil.IsValid(d.Colors.Secondary), "secondary for %s", key)
		require.True(t, colorutil.IsValid(d.Colors.Accent), "accent for %s", key)
		for _, svc := range d.Services {
			require.NotEmpty(t, svc.Title, "service title for %s", key)
		}
	}
}
