// Package theme holds the immutable visual identity registry for presentations.
package theme

import "fmt"

// DefaultName is the theme used when a requested name is unknown.
const DefaultName = "neobrutalism"

// Colors is the canonical palette consumed by the generation prompt and renderers.
type Colors struct {
	Background  string `json:"background"`
	TextPrimary string `json:"text_primary"`
	Accent      string `json:"accent"`
}

// Descriptor is an immutable value describing a presentation's visual identity.
// The generation loop reads it to enrich the system prompt and never mutates it.
type Descriptor struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Colors      Colors `json:"colors"`
}

// PromptContext renders the descriptor as a short hint embedded in the system prompt.
func (d Descriptor) PromptContext() string {
	return fmt.Sprintf("The presentation uses the %q theme: %s. Palette: background %s, text %s, accent %s.",
		d.DisplayName, d.Description,
		d.Colors.Background, d.Colors.TextPrimary, d.Colors.Accent)
}

var registry = map[string]Descriptor{
	"neobrutalism": {
		Name:        "neobrutalism",
		DisplayName: "Neobrutalism",
		Description: "Bold, playful style with offset shadows and pink accents",
		Colors:      Colors{Background: "#f4f4f0", TextPrimary: "#0f0f0f", Accent: "#ff90e8"},
	},
	"corporate": {
		Name:        "corporate",
		DisplayName: "Corporate",
		Description: "Clean, professional look with blue accents and numbered lists",
		Colors:      Colors{Background: "#ffffff", TextPrimary: "#1e293b", Accent: "#2563eb"},
	},
	"minimal": {
		Name:        "minimal",
		DisplayName: "Minimal",
		Description: "Ultra-clean with thin typography and maximum whitespace",
		Colors:      Colors{Background: "#ffffff", TextPrimary: "#18181b", Accent: "#18181b"},
	},
	"dark": {
		Name:        "dark",
		DisplayName: "Dark",
		Description: "Modern dark mode with purple accents and subtle glow",
		Colors:      Colors{Background: "#0f0f0f", TextPrimary: "#f4f4f5", Accent: "#a78bfa"},
	},
	"magazine": {
		Name:        "magazine",
		DisplayName: "Magazine",
		Description: "Editorial elegance with serif typography and asymmetric layouts",
		Colors:      Colors{Background: "#faf9f7", TextPrimary: "#1a1a1a", Accent: "#c41e3a"},
	},
	"terminal": {
		Name:        "terminal",
		DisplayName: "Terminal",
		Description: "Hacker aesthetic with monospace fonts and green glow effects",
		Colors:      Colors{Background: "#0a0a0a", TextPrimary: "#00ff00", Accent: "#00ff00"},
	},
	"playful": {
		Name:        "playful",
		DisplayName: "Playful",
		Description: "Fun, colorful style with rounded shapes and bouncy typography",
		Colors:      Colors{Background: "#fff5eb", TextPrimary: "#2d1b69", Accent: "#ff6b6b"},
	},
}

// order matches the registry's presentation order for listing endpoints.
var order = []string{"neobrutalism", "corporate", "minimal", "dark", "magazine", "terminal", "playful"}

// Resolve returns the descriptor for the named theme, falling back to the
// default descriptor for unknown names. It never fails.
func Resolve(name string) Descriptor {
	if d, ok := registry[name]; ok {
		return d
	}
	return registry[DefaultName]
}

// Known reports whether the name is a registered theme.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// List returns all registered descriptors in stable order.
func List() []Descriptor {
	out := make([]Descriptor, 0, len(order))
	for _, name := range order {
		out = append(out, registry[name])
	}
	return out
}
