package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorIncludesLine(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("wizard.yaml", 12, underlying)

	require.EqualError(t, err, "parse error: wizard.yaml:12: unexpected token")
	require.ErrorIs(t, err, underlying)
}

func TestValidationErrorJoinsIssues(t *testing.T) {
	t.Parallel()

	err := NewValidationError("test-co", []string{"brand name is required", "contact email is required"})
	require.EqualError(t, err, "invalid configuration for test-co: brand name is required; contact email is required")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 2)
}

func TestTemplateNotFoundError(t *testing.T) {
	t.Parallel()

	err := NewTemplateNotFoundError("restaurant-classic")
	require.EqualError(t, err, "template not found: restaurant-classic")
}

func TestProcessingErrorWraps(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("decode png: short read")
	err := NewProcessingError("test-co-logo.png", underlying)

	require.EqualError(t, err, "processing error [test-co-logo.png]: decode png: short read")
	require.ErrorIs(t, err, underlying)
}
