package config

// BusinessDefaults holds the per-business-type fallback values merged under
// the wizard submission. Adding a business type is a data addition here,
// never a new type elsewhere.
type BusinessDefaults struct {
	Colors      Palette
	Features    FeatureDefaults
	Terminology string
	Services    []DefaultService
}

// FeatureDefaults enables or disables optional site sections per business type.
type FeatureDefaults struct {
	Blog         bool
	Testimonials bool
	FAQ          bool
}

// DefaultService seeds the service list when the wizard provides none.
type DefaultService struct {
	Title string
	Icon  string
}

// FallbackBusinessType is used whenever the wizard's business type is
// absent or unknown.
const FallbackBusinessType = "business"

var businessDefaults = map[string]BusinessDefaults{
	"business": {
		Colors:      Palette{Primary: "#1E40AF", Secondary: "#3B82F6", Accent: "#F59E0B"},
		Features:    FeatureDefaults{Blog: false, Testimonials: true, FAQ: true},
		Terminology: "services",
		Services: []DefaultService{
			{Title: "Conseil personnalisé", Icon: "users"},
			{Title: "Accompagnement sur mesure", Icon: "compass"},
			{Title: "Suivi de projet", Icon: "clipboard"},
			{Title: "Support réactif", Icon: "headset"},
		},
	},
	"restaurant": {
		Colors:      Palette{Primary: "#DC2626", Secondary: "#F87171", Accent: "#FBBF24"},
		Features:    FeatureDefaults{Blog: true, Testimonials: true, FAQ: false},
		Terminology: "spécialités",
		Services: []DefaultService{
			{Title: "Cuisine traditionnelle", Icon: "utensils"},
			{Title: "Plats à emporter", Icon: "shopping-bag"},
			{Title: "Événements privés", Icon: "calendar"},
		},
	},
	"plumbing": {
		Colors:      Palette{Primary: "#0369A1", Secondary: "#38BDF8", Accent: "#FACC15"},
		Features:    FeatureDefaults{Blog: false, Testimonials: true, FAQ: true},
		Terminology: "interventions",
		Services: []DefaultService{
			{Title: "Dépannage urgent", Icon: "wrench"},
			{Title: "Installation sanitaire", Icon: "droplet"},
			{Title: "Rénovation salle de bain", Icon: "bath"},
			{Title: "Entretien chaudière", Icon: "flame"},
		},
	},
	"beauty": {
		Colors:      Palette{Primary: "#DB2777", Secondary: "#F472B6", Accent: "#A78BFA"},
		Features:    FeatureDefaults{Blog: true, Testimonials: true, FAQ: false},
		Terminology: "soins",
		Services: []DefaultService{
			{Title: "Soins du visage", Icon: "sparkles"},
			{Title: "Épilation", Icon: "feather"},
			{Title: "Maquillage événementiel", Icon: "palette"},
		},
	},
	"construction": {
		Colors:      Palette{Primary: "#EA580C", Secondary: "#FB923C", Accent: "#475569"},
		Features:    FeatureDefaults{Blog: false, Testimonials: true, FAQ: true},
		Terminology: "chantiers",
		Services: []DefaultService{
			{Title: "Gros œuvre", Icon: "hard-hat"},
			{Title: "Rénovation intérieure", Icon: "hammer"},
			{Title: "Extension de maison", Icon: "home"},
			{Title: "Maçonnerie générale", Icon: "bricks"},
		},
	},
	"consulting": {
		Colors:      Palette{Primary: "#4F46E5", Secondary: "#818CF8", Accent: "#34D399"},
		Features:    FeatureDefaults{Blog: true, Testimonials: true, FAQ: true},
		Terminology: "missions",
		Services: []DefaultService{
			{Title: "Audit stratégique", Icon: "search"},
			{Title: "Transformation digitale", Icon: "cpu"},
			{Title: "Formation d'équipe", Icon: "graduation-cap"},
		},
	},
}

// DefaultsFor resolves the defaults for a business type, falling back to
// the generic business entry for absent or unknown keys.
func DefaultsFor(businessType string) BusinessDefaults {
	if d, ok := businessDefaults[businessType]; ok {
		return d
	}
	return businessDefaults[FallbackBusinessType]
}

// KnownBusinessTypes lists the business types carrying dedicated defaults.
func KnownBusinessTypes() []string {
	types := make([]string, 0, len(businessDefaults))
	for key := range businessDefaults {
		types = append(types, key)
	}
	return types
}

// IsKnownBusinessType reports whether the key has dedicated defaults.
func IsKnownBusinessType(key string) bool {
	_, ok := businessDefaults[key]
	return ok
}
