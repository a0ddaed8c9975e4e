package site

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/forgesite/forgesite/internal/config"
	"github.com/forgesite/forgesite/pkg/colorutil"
	"github.com/forgesite/forgesite/pkg/slug"
)

// Fallback feature list attached to services that declare none.
var defaultServiceFeatures = []string{
	"Devis gratuit",
	"Intervention rapide",
	"Travail soigné",
	"Garantie qualité",
}

// Assemble produces a complete SiteConfig from a wizard submission.
// It performs no I/O and is deterministic for identical input.
func Assemble(in *config.WizardInput) *SiteConfig {
	defaults := config.DefaultsFor(in.BusinessType)

	businessType := in.BusinessType
	if !config.IsKnownBusinessType(businessType) {
		businessType = config.FallbackBusinessType
	}

	siteID := in.SiteID
	if siteID == "" {
		siteID = slug.SiteID(in.SiteName)
	}

	colors := defaults.Colors
	if in.Colors != nil {
		colors = *in.Colors
	}

	terminology := defaults.Terminology
	services := normalizeServices(in, defaults, siteID, terminology)
	features := mergeFeatures(defaults.Features, in.Features)

	cfg := &SiteConfig{
		Meta: Meta{
			SiteID:   siteID,
			Domain:   in.Domain,
			Language: valueOr(in.Language, "fr"),
			Timezone: valueOr(in.Timezone, "Europe/Paris"),
			Template: valueOr(in.Template, "classic"),
		},
		BusinessType: businessType,
		Terminology:  terminology,
		Brand: Brand{
			Name:   in.SiteName,
			Slogan: in.Slogan,
			Logos: Logos{
				Navbar: fmt.Sprintf("%s-logo-navbar.png", siteID),
				Footer: fmt.Sprintf("%s-logo-footer.png", siteID),
			},
			Favicons: Favicons{
				Light: fmt.Sprintf("%s-favicon-light.png", siteID),
				Dark:  fmt.Sprintf("%s-favicon-dark.png", siteID),
			},
			Colors: colors,
		},
		Design:       deriveDesign(colors),
		Sections:     deriveSections(colors),
		Layout:       Layout{HeaderStyle: "fixed", MaxWidth: "1200px", FooterColumns: 3},
		Routing:      Routing{Home: "/", Services: "/services", Blog: "/blog", About: "/a-propos", Contact: "/contact", CleanURLs: true},
		Navbar:       deriveNavbar(colors),
		Footer:       deriveFooter(colors),
		Navigation:   buildNavigation(terminology, features),
		Content:      buildContent(in, defaults, siteID, terminology, services),
		Contact:      in.Contact,
		Features:     features,
		SEO:          buildSEO(in, businessType, siteID, terminology, services),
		Integrations: mergeIntegrations(in.Integrations),
	}

	return cfg
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// deriveDesign computes page-level tokens from the effective palette.
func deriveDesign(colors config.Palette) Design {
	return Design{
		PageHeaderBackground: colorutil.Darken(colors.Primary, 0.15),
		PageHeaderText:       colorutil.Lighten(colors.Primary, 0.9),
		MutedText:            colorutil.Darken(colors.Secondary, 0.3),
		SubtleText:           colorutil.Lighten(colors.Secondary, 0.25),
	}
}

func deriveSections(colors config.Palette) Sections {
	return Sections{
		Hero: Section{
			Background: colors.Primary,
			TextColor:  colorutil.Lighten(colors.Primary, 0.95),
		},
		Services: Section{
			Background:     colorutil.Lighten(colors.Secondary, 0.45),
			TextColor:      colorutil.Darken(colors.Primary, 0.25),
			CardBackground: colorutil.Lighten(colors.Secondary, 0.55),
		},
		About: Section{
			Background: colorutil.Lighten(colors.Accent, 0.4),
			TextColor:  colorutil.Darken(colors.Primary, 0.3),
		},
		Testimonials: Section{
			Background:     colorutil.Lighten(colors.Primary, 0.45),
			TextColor:      colorutil.Darken(colors.Primary, 0.35),
			CardBackground: colorutil.Lighten(colors.Primary, 0.55),
		},
		FAQ: Section{
			Background: colorutil.Lighten(colors.Secondary, 0.5),
			TextColor:  colorutil.Darken(colors.Secondary, 0.35),
		},
		Contact: Section{
			Background: colorutil.Darken(colors.Primary, 0.1),
			TextColor:  colorutil.Lighten(colors.Primary, 0.9),
		},
	}
}

func deriveNavbar(colors config.Palette) Bar {
	return Bar{
		Background: colorutil.Lighten(colors.Secondary, 0.48),
		Text:       colorutil.Darken(colors.Primary, 0.35),
		Accent:     colors.Accent,
	}
}

func deriveFooter(colors config.Palette) Bar {
	return Bar{
		Background: colorutil.Darken(colors.Primary, 0.3),
		Text:       colorutil.Lighten(colors.Secondary, 0.4),
		Accent:     colors.Accent,
	}
}

// normalizeServices builds content.services. The result is never empty:
// when the wizard declares nothing, the business-type default list is run
// through the same normalization.
func normalizeServices(in *config.WizardInput, defaults config.BusinessDefaults, siteID, terminology string) []ServiceEntry {
	source := in.EffectiveServices()
	if len(source) == 0 {
		source = make([]config.Activity, len(defaults.Services))
		for i, svc := range defaults.Services {
			source[i] = config.Activity{Title: svc.Title}
		}
	}

	var generated map[string]string
	if in.GeneratedContent != nil {
		generated = in.GeneratedContent.Services
	}

	entries := make([]ServiceEntry, len(source))
	for i, activity := range source {
		title := strings.TrimSpace(activity.Title)
		if title == "" {
			title = fmt.Sprintf("%s %d", capitalize(terminology), i+1)
		}

		description := activity.Description
		if description == "" {
			description = generated[title]
		}
		if description == "" {
			description = fmt.Sprintf("%s professionnels en %s", terminology, title)
		}

		image := activity.Image
		if image == "" {
			image = fmt.Sprintf("%s-services-%d.png", siteID, i+1)
		}

		features := activity.Features
		if len(features) == 0 {
			features = append([]string(nil), defaultServiceFeatures...)
		}

		entries[i] = ServiceEntry{
			Title:       title,
			Slug:        slug.Make(title),
			Description: description,
			Image:       image,
			Features:    features,
		}
	}

	return entries
}

// buildNavigation assembles the link list: Home, the terminology-labelled
// services link, Blog when enabled, About, then the fixed CTA.
func buildNavigation(terminology string, features map[string]bool) Navigation {
	links := []NavLink{
		{Label: "Accueil", Path: "/"},
		{Label: capitalize(terminology), Path: "/services"},
	}
	if features["blog"] {
		links = append(links, NavLink{Label: "Blog", Path: "/blog"})
	}
	links = append(links, NavLink{Label: "À propos", Path: "/a-propos"})

	return Navigation{
		Links: links,
		CTA:   NavLink{Label: "Contactez-nous", Path: "/contact"},
	}
}

// mergeFeatures applies "wizard wins, else default" per key, then forces the
// adaptive asset flags on and resolves blogSearch from the merged blog flag.
func mergeFeatures(defaults config.FeatureDefaults, overrides map[string]bool) map[string]bool {
	features := map[string]bool{
		"blog":         defaults.Blog,
		"testimonials": defaults.Testimonials,
		"faq":          defaults.FAQ,
	}
	for key, value := range overrides {
		features[key] = value
	}

	features["adaptiveLogos"] = true
	features["adaptiveFavicons"] = true

	if _, overridden := overrides["blogSearch"]; !overridden {
		features["blogSearch"] = features["blog"]
	}

	return features
}

func buildContent(in *config.WizardInput, defaults config.BusinessDefaults, siteID, terminology string, services []ServiceEntry) Content {
	hero := Hero{
		Title:    in.SiteName,
		Subtitle: in.Slogan,
		CTA:      "Demander un devis",
		Image:    fmt.Sprintf("%s-hero.png", siteID),
	}
	if hero.Subtitle == "" {
		hero.Subtitle = fmt.Sprintf("Vos %s de confiance", terminology)
	}

	about := About{
		Title: fmt.Sprintf("À propos de %s", in.SiteName),
		Text:  fmt.Sprintf("%s vous accompagne avec des %s de qualité.", in.SiteName, terminology),
		Image: fmt.Sprintf("%s-about.png", siteID),
	}

	if in.GeneratedContent != nil {
		if gen := in.GeneratedContent.Hero; gen != nil {
			if gen.Title != "" {
				hero.Title = gen.Title
			}
			if gen.Subtitle != "" {
				hero.Subtitle = gen.Subtitle
			}
			if gen.CTA != "" {
				hero.CTA = gen.CTA
			}
		}
		if in.GeneratedContent.About != "" {
			about.Text = in.GeneratedContent.About
		}
	}

	return Content{
		Hero:     hero,
		Services: services,
		Images: Images{
			Hero:  fmt.Sprintf("%s-hero.png", siteID),
			About: fmt.Sprintf("%s-about.png", siteID),
		},
		ServicesSection: SectionCopy{
			Title:    fmt.Sprintf("Nos %s", terminology),
			Subtitle: fmt.Sprintf("Découvrez l'ensemble de nos %s", terminology),
		},
		ServicesPage: SectionCopy{
			Title:    capitalize(terminology),
			Subtitle: fmt.Sprintf("Toutes nos %s en détail", terminology),
		},
		About: about,
		Testimonials: SectionToggle{
			Enabled: defaults.Features.Testimonials,
			Title:   "Ils nous font confiance",
		},
		FAQ: SectionToggle{
			Enabled: defaults.Features.FAQ,
			Title:   "Questions fréquentes",
		},
	}
}

// buildSEO concatenates the keyword list without de-duplicating; duplicate
// keywords are accepted behavior, not cleaned up here.
func buildSEO(in *config.WizardInput, businessType, siteID, terminology string, services []ServiceEntry) SEO {
	keywords := []string{
		strings.ToLower(in.SiteName),
		strings.ToLower(businessType),
		strings.ToLower(businessType) + " services",
		"professional services",
	}
	for _, svc := range services {
		keywords = append(keywords, strings.ToLower(svc.Title))
	}

	title := in.SiteName
	if in.Slogan != "" {
		title = fmt.Sprintf("%s | %s", in.SiteName, in.Slogan)
	}

	description := in.Slogan
	if description == "" {
		description = fmt.Sprintf("%s : %s professionnels près de chez vous.", in.SiteName, terminology)
	}

	seo := SEO{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		OGImage:     fmt.Sprintf("%s-hero.png", siteID),
	}
	if in.Integrations.Analytics != nil {
		seo.Analytics = in.Integrations.Analytics.TrackingID
	}
	return seo
}

// mergeIntegrations applies the shallow "wizard wins, else default" rule
// per block. security.captcha is intentionally merged one level deeper
// than every other integration; do not generalize this.
func mergeIntegrations(in config.Integrations) SiteIntegrations {
	out := SiteIntegrations{
		Newsletter:  config.Newsletter{Enabled: false, Provider: "none"},
		Whatsapp:    config.Whatsapp{Enabled: false},
		LiveChat:    config.LiveChat{Enabled: false},
		GoogleMaps:  config.GoogleMaps{Enabled: true, Zoom: 14},
		Calendly:    config.Calendly{Enabled: false},
		Analytics:   config.Analytics{Enabled: false, Provider: "plausible"},
		Performance: config.Performance{ImageQuality: 85, LazyLoading: true, Minify: true},
		Security: config.Security{
			ForceSSL:     true,
			CookieBanner: true,
			Captcha:      &config.Captcha{Enabled: false, Provider: "turnstile"},
		},
		N8N: config.N8N{Enabled: false},
	}

	if in.Newsletter != nil {
		out.Newsletter = *in.Newsletter
	}
	if in.Whatsapp != nil {
		out.Whatsapp = *in.Whatsapp
	}
	if in.LiveChat != nil {
		out.LiveChat = *in.LiveChat
	}
	if in.GoogleMaps != nil {
		out.GoogleMaps = *in.GoogleMaps
	}
	if in.Calendly != nil {
		out.Calendly = *in.Calendly
	}
	if in.Analytics != nil {
		out.Analytics = *in.Analytics
	}
	if in.Performance != nil {
		out.Performance = *in.Performance
	}
	if in.Security != nil {
		captchaDefault := out.Security.Captcha
		out.Security = *in.Security
		if out.Security.Captcha == nil {
			out.Security.Captcha = captchaDefault
		}
	}
	if in.N8N != nil {
		out.N8N = *in.N8N
	}

	return out
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
