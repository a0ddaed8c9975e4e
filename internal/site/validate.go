package site

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexPattern    = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	siteIDPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// Result reports the outcome of validating a SiteConfig. Errors holds one
// human-readable message per failed rule; rules are checked independently,
// never short-circuited.
type Result struct {
	Valid  bool
	Errors []string
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("hexcolor36", func(fl validator.FieldLevel) bool {
			return hexPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("site_id", func(fl validator.FieldLevel) bool {
			return siteIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks an assembled configuration against the required-field and
// format rules. It does not mutate the input.
func Validate(cfg *SiteConfig) Result {
	if cfg == nil {
		return Result{Valid: false, Errors: []string{"configuration is nil"}}
	}

	var errs []string

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range ves {
				errs = append(errs, describeFailure(ve))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	// Contact and palette rules live on shared wizard types that carry no
	// validate tags, so they are checked here explicitly.
	if cfg.Contact.Email == "" {
		errs = append(errs, "contact.email is required")
	} else if v.Var(cfg.Contact.Email, "email") != nil {
		errs = append(errs, "contact.email must be a valid email address")
	}

	if cfg.Brand.Colors.Primary == "" {
		errs = append(errs, "brand.colors.primary is required")
	}
	palette := []struct {
		field string
		value string
	}{
		{"brand.colors.primary", cfg.Brand.Colors.Primary},
		{"brand.colors.secondary", cfg.Brand.Colors.Secondary},
		{"brand.colors.accent", cfg.Brand.Colors.Accent},
	}
	for _, c := range palette {
		if c.value != "" && !hexPattern.MatchString(c.value) {
			errs = append(errs, fmt.Sprintf("%s must be a 3 or 6 digit hex color", c.field))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func describeFailure(ve validator.FieldError) string {
	field := jsonishFieldName(ve)
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "hexcolor36":
		return fmt.Sprintf("%s must be a 3 or 6 digit hex color", field)
	case "site_id":
		return fmt.Sprintf("%s must be lowercase alphanumeric with hyphens", field)
	default:
		return fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
	}
}

func jsonishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:] // drop the SiteConfig prefix
	}

	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, lowerFirst(part))
	}
	return strings.Join(lowered, ".")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	// Initialisms used in field names keep their JSON spelling.
	switch s {
	case "SiteID":
		return "siteId"
	case "SEO":
		return "seo"
	case "CTA":
		return "cta"
	}
	return strings.ToLower(s[:1]) + s[1:]
}
