// Package site defines the persisted site configuration artifact and the
// assembler and validator that produce and check it.
package site

import (
	"github.com/forgesite/forgesite/internal/config"
)

// SiteConfig is the complete, internally consistent site descriptor
// produced by Assemble and persisted as site-config.json. Every color it
// carries outside brand.colors is derived from brand.colors; none are
// independently supplied.
type SiteConfig struct {
	Meta         Meta             `json:"meta"`
	BusinessType string           `json:"businessType"`
	Terminology  string           `json:"terminology"`
	Brand        Brand            `json:"brand"`
	Design       Design           `json:"design"`
	Sections     Sections         `json:"sections"`
	Layout       Layout           `json:"layout"`
	Routing      Routing          `json:"routing"`
	Navbar       Bar              `json:"navbar"`
	Footer       Bar              `json:"footer"`
	Navigation   Navigation       `json:"navigation"`
	Content      Content          `json:"content"`
	Contact      config.Contact   `json:"contact"`
	Features     map[string]bool  `json:"features"`
	SEO          SEO              `json:"seo"`
	Integrations SiteIntegrations `json:"integrations"`

	// Template metadata, present only on snapshots stored under templates/.
	Template *TemplateMeta `json:"_template,omitempty"`
}

// Meta identifies the site and its basic locale settings.
type Meta struct {
	SiteID   string `json:"siteId" validate:"required,site_id"`
	Domain   string `json:"domain,omitempty"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Template string `json:"template"`
}

// Brand groups naming, assets and the effective color palette.
type Brand struct {
	Name     string         `json:"name" validate:"required"`
	Slogan   string         `json:"slogan,omitempty"`
	Logos    Logos          `json:"logos"`
	Favicons Favicons       `json:"favicons"`
	Colors   config.Palette `json:"colors"`
}

// Logos references the navbar and footer logo assets by filename.
type Logos struct {
	Navbar string `json:"navbar"`
	Footer string `json:"footer"`
}

// Favicons references the light and dark favicon assets by filename.
type Favicons struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

// Design holds page-level derived color tokens.
type Design struct {
	PageHeaderBackground string `json:"pageHeaderBackground" validate:"omitempty,hexcolor36"`
	PageHeaderText       string `json:"pageHeaderText" validate:"omitempty,hexcolor36"`
	MutedText            string `json:"mutedText" validate:"omitempty,hexcolor36"`
	SubtleText           string `json:"subtleText" validate:"omitempty,hexcolor36"`
}

// Section holds the derived colors of one page section.
type Section struct {
	Background     string `json:"background" validate:"omitempty,hexcolor36"`
	TextColor      string `json:"textColor" validate:"omitempty,hexcolor36"`
	CardBackground string `json:"cardBackground,omitempty" validate:"omitempty,hexcolor36"`
}

// Sections carries the derived palette of every page section.
type Sections struct {
	Hero         Section `json:"hero"`
	Services     Section `json:"services"`
	About        Section `json:"about"`
	Testimonials Section `json:"testimonials"`
	FAQ          Section `json:"faq"`
	Contact      Section `json:"contact"`
}

// Layout is fixed structural configuration with no business logic.
type Layout struct {
	HeaderStyle   string `json:"headerStyle"`
	MaxWidth      string `json:"maxWidth"`
	FooterColumns int    `json:"footerColumns"`
}

// Routing maps the fixed page routes.
type Routing struct {
	Home      string `json:"home"`
	Services  string `json:"services"`
	Blog      string `json:"blog"`
	About     string `json:"about"`
	Contact   string `json:"contact"`
	CleanURLs bool   `json:"cleanUrls"`
}

// Bar holds the derived colors of the navbar or footer.
type Bar struct {
	Background string `json:"background" validate:"omitempty,hexcolor36"`
	Text       string `json:"text" validate:"omitempty,hexcolor36"`
	Accent     string `json:"accent" validate:"omitempty,hexcolor36"`
}

// NavLink is one navigation entry.
type NavLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Navigation lists the feature-filtered links plus the call-to-action.
type Navigation struct {
	Links []NavLink `json:"links"`
	CTA   NavLink   `json:"cta"`
}

// Content groups every text block of the generated site.
type Content struct {
	Hero            Hero           `json:"hero"`
	Services        []ServiceEntry `json:"services"`
	Images          Images         `json:"images"`
	ServicesSection SectionCopy    `json:"servicesSection"`
	ServicesPage    SectionCopy    `json:"servicesPage"`
	About           About          `json:"about"`
	Testimonials    SectionToggle  `json:"testimonials"`
	FAQ             SectionToggle  `json:"faq"`
}

// Hero is the landing banner copy.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTA      string `json:"cta"`
	Image    string `json:"image"`
}

// ServiceEntry is one normalized service. Normalization guarantees a
// title, slug, description, image and a non-empty feature list.
type ServiceEntry struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
}

// Images references the shared page images by filename.
type Images struct {
	Hero  string `json:"hero"`
	About string `json:"about"`
}

// SectionCopy is a title/subtitle pair for a section or page heading.
type SectionCopy struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// About is the about-page copy.
type About struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Image string `json:"image"`
}

// SectionToggle enables an optional section and carries its heading.
type SectionToggle struct {
	Enabled bool   `json:"enabled"`
	Title   string `json:"title"`
}

// SEO groups the head metadata of the generated site.
type SEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"ogImage"`
	Analytics   string   `json:"analytics,omitempty"`
}

// SiteIntegrations is the fully defaulted integrations block. Unlike the
// wizard's optional pointers, every sub-block is present here.
type SiteIntegrations struct {
	Newsletter  config.Newsletter  `json:"newsletter"`
	Whatsapp    config.Whatsapp    `json:"whatsapp"`
	LiveChat    config.LiveChat    `json:"liveChat"`
	GoogleMaps  config.GoogleMaps  `json:"googleMaps"`
	Calendly    config.Calendly    `json:"calendly"`
	Analytics   config.Analytics   `json:"analytics"`
	Performance config.Performance `json:"performance"`
	Security    config.Security    `json:"security"`
	N8N         config.N8N         `json:"n8n"`
}

// TemplateMeta is attached to configurations stored as reusable templates.
type TemplateMeta struct {
	Name         string `json:"name"`
	BusinessType string `json:"businessType"`
	Created      string `json:"created"`
	Description  string `json:"description,omitempty"`
}
