// Package sales turns structured sales-pitch input into presentation-ready
// narrative content for the generation pipeline.
package sales

// ProductInfo describes the product or service being pitched.
type ProductInfo struct {
	Name        string   `json:"name"`
	Tagline     *string  `json:"tagline,omitempty"`
	Description string   `json:"description"`
	KeyFeatures []string `json:"key_features,omitempty"`
	Pricing     *string  `json:"pricing,omitempty"`
}

// TargetMarket describes who the pitch is aimed at.
type TargetMarket struct {
	Industry    string  `json:"industry"`
	Audience    string  `json:"audience"`
	CompanySize *string `json:"company_size,omitempty"`
	Geography   *string `json:"geography,omitempty"`
}

// PainPoints lists the problems the product solves and how it stands apart.
type PainPoints struct {
	Problems         []string `json:"problems"`
	CurrentSolutions *string  `json:"current_solutions,omitempty"`
	Differentiators  []string `json:"differentiators,omitempty"`
}

// SocialProof carries credibility signals.
type SocialProof struct {
	Testimonials []string `json:"testimonials,omitempty"`
	Metrics      []string `json:"metrics,omitempty"`
	Logos        []string `json:"logos,omitempty"`
}

// CallToAction is the desired outcome of the presentation.
type CallToAction struct {
	Goal      string   `json:"goal"`
	Urgency   *string  `json:"urgency,omitempty"`
	NextSteps []string `json:"next_steps,omitempty"`
}

// PitchInput is the complete structured input collected by the sales wizard.
type PitchInput struct {
	Product     ProductInfo  `json:"product"`
	Market      TargetMarket `json:"market"`
	PainPoints  PainPoints   `json:"pain_points"`
	SocialProof *SocialProof `json:"social_proof,omitempty"`
	CTA         CallToAction `json:"cta"`

	Tone       string `json:"tone"`
	SlideCount int    `json:"slide_count"`
	Theme      string `json:"theme"`
}

// Content is the generated pitch material fed into slide generation.
type Content struct {
	Text    string   `json:"generated_text"`
	Title   string   `json:"suggested_title"`
	Outline []string `json:"slide_outline"`
}
