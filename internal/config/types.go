// Package config models the wizard submission that drives site generation
// and the static business-type defaults it is merged with.
package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WizardInput is the raw, partially populated document produced by the
// wizard UI. It is consumed exactly once by the assembler and never
// persisted in this form.
type WizardInput struct {
	SiteName     string `json:"siteName" yaml:"siteName"`
	SiteID       string `json:"siteId,omitempty" yaml:"siteId"`
	BusinessType string `json:"businessType,omitempty" yaml:"businessType"`
	Domain       string `json:"domain,omitempty" yaml:"domain"`
	Language     string `json:"language,omitempty" yaml:"language"`
	Timezone     string `json:"timezone,omitempty" yaml:"timezone"`
	Template     string `json:"template,omitempty" yaml:"template"`
	Slogan       string `json:"slogan,omitempty" yaml:"slogan"`

	Colors  *Palette `json:"colors,omitempty" yaml:"colors"`
	Contact Contact  `json:"contact,omitempty" yaml:"contact"`

	// Activities and Services are aliases; the wizard has used both names
	// over time. Activities wins when both are present.
	Activities []Activity `json:"activities,omitempty" yaml:"activities"`
	Services   []Activity `json:"services,omitempty" yaml:"services"`

	GeneratedContent *GeneratedContent `json:"generatedContent,omitempty" yaml:"generatedContent"`
	Integrations     Integrations      `json:"integrations,omitempty" yaml:"integrations"`
	Features         map[string]bool   `json:"features,omitempty" yaml:"features"`
}

// EffectiveServices returns the wizard's service list, preferring the
// activities spelling.
func (w *WizardInput) EffectiveServices() []Activity {
	if len(w.Activities) > 0 {
		return w.Activities
	}
	return w.Services
}

// Palette is a brand color triple. Fields hold hex strings.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Accent    string `json:"accent" yaml:"accent"`
}

// Contact is the wizard's contact block.
type Contact struct {
	Email   string            `json:"email" yaml:"email"`
	Phone   string            `json:"phone,omitempty" yaml:"phone"`
	Address string            `json:"address,omitempty" yaml:"address"`
	Hours   string            `json:"hours,omitempty" yaml:"hours"`
	Social  map[string]string `json:"social,omitempty" yaml:"social"`
}

// Activity is one wizard-declared service. The wizard sometimes emits bare
// strings instead of objects, so decoding accepts both forms.
type Activity struct {
	Title       string   `json:"title,omitempty" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Image       string   `json:"image,omitempty" yaml:"image"`
	Features    []string `json:"features,omitempty" yaml:"features"`
}

// UnmarshalJSON accepts either an object or a bare title string.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*a = Activity{Title: title}
		return nil
	}

	type rawActivity Activity
	var raw rawActivity
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("activity must be a string or an object: %w", err)
	}
	*a = Activity(raw)
	return nil
}

// UnmarshalYAML accepts either a mapping or a bare title scalar.
func (a *Activity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*a = Activity{Title: value.Value}
		return nil
	}

	type rawActivity Activity
	var raw rawActivity
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("activity must be a string or a mapping: %w", err)
	}
	*a = Activity(raw)
	return nil
}

// GeneratedContent carries AI-produced copy the wizard may attach.
type GeneratedContent struct {
	Hero  *HeroContent `json:"hero,omitempty" yaml:"hero"`
	About string       `json:"about,omitempty" yaml:"about"`

	// Per-service descriptions keyed by service title.
	Services map[string]string `json:"services,omitempty" yaml:"services"`
}

// HeroContent is generated hero copy.
type HeroContent struct {
	Title    string `json:"title,omitempty" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle"`
	CTA      string `json:"cta,omitempty" yaml:"cta"`
}

// Integrations groups the optional third-party blocks. A nil block means
// "use the documented default"; a present block is taken verbatim.
type Integrations struct {
	Newsletter  *Newsletter  `json:"newsletter,omitempty" yaml:"newsletter"`
	Whatsapp    *Whatsapp    `json:"whatsapp,omitempty" yaml:"whatsapp"`
	LiveChat    *LiveChat    `json:"liveChat,omitempty" yaml:"liveChat"`
	GoogleMaps  *GoogleMaps  `json:"googleMaps,omitempty" yaml:"googleMaps"`
	Calendly    *Calendly    `json:"calendly,omitempty" yaml:"calendly"`
	Analytics   *Analytics   `json:"analytics,omitempty" yaml:"analytics"`
	Performance *Performance `json:"performance,omitempty" yaml:"performance"`
	Security    *Security    `json:"security,omitempty" yaml:"security"`
	N8N         *N8N         `json:"n8n,omitempty" yaml:"n8n"`
}

// Newsletter configures the mailing list signup block.
type Newsletter struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Provider string `json:"provider,omitempty" yaml:"provider"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint"`
}

// Whatsapp configures the floating chat button.
type Whatsapp struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Number  string `json:"number,omitempty" yaml:"number"`
	Message string `json:"message,omitempty" yaml:"message"`
}

// LiveChat configures an embedded chat widget.
type LiveChat struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Provider string `json:"provider,omitempty" yaml:"provider"`
	WidgetID string `json:"widgetId,omitempty" yaml:"widgetId"`
}

// GoogleMaps configures the contact-page map embed.
type GoogleMaps struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Query   string `json:"query,omitempty" yaml:"query"`
	Zoom    int    `json:"zoom,omitempty" yaml:"zoom"`
}

// Calendly configures appointment booking.
type Calendly struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	URL     string `json:"url,omitempty" yaml:"url"`
}

// Analytics configures the tracking snippet.
type Analytics struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Provider   string `json:"provider,omitempty" yaml:"provider"`
	TrackingID string `json:"trackingId,omitempty" yaml:"trackingId"`
}

// Performance holds asset delivery tuning.
type Performance struct {
	ImageQuality int  `json:"imageQuality" yaml:"imageQuality"`
	LazyLoading  bool `json:"lazyLoading" yaml:"lazyLoading"`
	Minify       bool `json:"minify" yaml:"minify"`
}

// Security holds hardening switches. Captcha is the one block that is
// merged a level deeper than every other integration.
type Security struct {
	ForceSSL     bool     `json:"forceSSL" yaml:"forceSSL"`
	CookieBanner bool     `json:"cookieBanner" yaml:"cookieBanner"`
	Captcha      *Captcha `json:"captcha,omitempty" yaml:"captcha"`
}

// Captcha configures form protection.
type Captcha struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Provider string `json:"provider,omitempty" yaml:"provider"`
	SiteKey  string `json:"siteKey,omitempty" yaml:"siteKey"`
}

// N8N references the provisioned automation webhook.
type N8N struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	WebhookURL string `json:"webhookUrl,omitempty" yaml:"webhookUrl"`
}
