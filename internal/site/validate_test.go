package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgesite/forgesite/internal/config"
)

func validConfig() *SiteConfig {
	return Assemble(&config.WizardInput{
		SiteName:     "Test Co",
		BusinessType: "restaurant",
		Contact:      config.Contact{Email: "a@b.com"},
	})
}

func TestValidateAcceptsAssembledConfig(t *testing.T) {
	t.Parallel()

	res := Validate(validConfig())
	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.Empty(t, res.Errors)
}

func TestValidateMissingEmail(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Contact.Email = ""

	res := Validate(cfg)
	require.False(t, res.Valid)

	found := false
	for _, msg := range res.Errors {
		if strings.Contains(msg, "email") {
			found = true
		}
	}
	require.True(t, found, "expected an error mentioning email, got %v", res.Errors)
}

func TestValidateMalformedEmail(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Contact.Email = "not-an-email"

	res := Validate(cfg)
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "contact.email must be a valid email address")
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Meta.SiteID = ""
	cfg.Brand.Name = ""
	cfg.Brand.Colors.Primary = ""
	cfg.Contact.Email = ""

	res := Validate(cfg)
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "meta.siteId is required")
	require.Contains(t, res.Errors, "brand.name is required")
	require.Contains(t, res.Errors, "brand.colors.primary is required")
	require.Contains(t, res.Errors, "contact.email is required")
	require.GreaterOrEqual(t, len(res.Errors), 4)
}

func TestValidateRejectsBadHexColors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Brand.Colors.Secondary = "red"
	cfg.Brand.Colors.Accent = "#12345"

	res := Validate(cfg)
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "brand.colors.secondary must be a 3 or 6 digit hex color")
	require.Contains(t, res.Errors, "brand.colors.accent must be a 3 or 6 digit hex color")
}

func TestValidateAcceptsShortHex(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Brand.Colors.Primary = "#f00"

	res := Validate(cfg)
	require.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestValidateDoesNotMutate(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	before := *cfg
	_ = Validate(cfg)
	require.Equal(t, before, *cfg)
}

func TestValidateNilConfig(t *testing.T) {
	t.Parallel()

	res := Validate(nil)
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
}
