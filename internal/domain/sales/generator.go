package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/llm"
)

const (
	defaultTone       = "professional"
	defaultSlideCount = 10
	contentTemp       = 0.7
	titleTemp         = 0.8
)

// Generator produces pitch narrative, title and outline from structured
// sales input. The output text becomes the source material for a normal
// generation run.
type Generator struct {
	gateway *llm.Gateway
	log     zerolog.Logger
}

func NewGenerator(gateway *llm.Gateway, log zerolog.Logger) *Generator {
	return &Generator{
		gateway: gateway,
		log:     log.With().Str("component", "sales_generator").Logger(),
	}
}

// Generate builds the pitch content. The title falls back to the product
// name when the model returns nothing usable.
func (g *Generator) Generate(ctx context.Context, pitch PitchInput) (*Content, error) {
	if pitch.Tone == "" {
		pitch.Tone = defaultTone
	}
	if pitch.SlideCount <= 0 {
		pitch.SlideCount = defaultSlideCount
	}

	g.log.Info().Str("product", pitch.Product.Name).Str("tone", pitch.Tone).Msg("generating sales content")

	messages := []llm.ChatMessage{
		{Role: "system", Content: systemPrompt(pitch.Tone, pitch.Market.Audience, pitch.Market.Industry)},
		{Role: "user", Content: BuildContext(pitch)},
	}
	result, err := g.gateway.Complete(ctx, messages, contentTemp, nil)
	if err != nil {
		return nil, fmt.Errorf("generate pitch content: %w", err)
	}

	title, err := g.generateTitle(ctx, pitch)
	if err != nil {
		// A title miss should not sink the whole pitch.
		g.log.Warn().Err(err).Msg("title generation failed, using product name")
		title = pitch.Product.Name
	}

	return &Content{
		Text:    result.Text,
		Title:   title,
		Outline: BuildOutline(pitch),
	}, nil
}

func (g *Generator) generateTitle(ctx context.Context, pitch PitchInput) (string, error) {
	messages := []llm.ChatMessage{{Role: "user", Content: titlePrompt(pitch)}}
	result, err := g.gateway.Complete(ctx, messages, titleTemp, nil)
	if err != nil {
		return "", err
	}
	title := strings.Trim(strings.TrimSpace(result.Text), `"'`)
	if title == "" {
		title = pitch.Product.Name
	}
	return title, nil
}

// BuildContext flattens the structured pitch into the sectioned text the
// content prompt consumes.
func BuildContext(pitch PitchInput) string {
	var b strings.Builder

	section := func(header string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header)
		b.WriteString("\n")
	}
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	section("## PRODUCT/SERVICE")
	line("Name: %s", pitch.Product.Name)
	if pitch.Product.Tagline != nil {
		line("Tagline: %s", *pitch.Product.Tagline)
	}
	line("Description: %s", pitch.Product.Description)
	if len(pitch.Product.KeyFeatures) > 0 {
		line("Key Features: %s", strings.Join(pitch.Product.KeyFeatures, ", "))
	}
	if pitch.Product.Pricing != nil {
		line("Pricing: %s", *pitch.Product.Pricing)
	}

	section("## TARGET MARKET")
	line("Industry: %s", pitch.Market.Industry)
	line("Audience: %s", pitch.Market.Audience)
	if pitch.Market.CompanySize != nil {
		line("Company Size: %s", *pitch.Market.CompanySize)
	}
	if pitch.Market.Geography != nil {
		line("Geography: %s", *pitch.Market.Geography)
	}

	section("## PAIN POINTS & SOLUTION")
	line("Problems We Solve: %s", strings.Join(pitch.PainPoints.Problems, ", "))
	if pitch.PainPoints.CurrentSolutions != nil {
		line("Current Solutions: %s", *pitch.PainPoints.CurrentSolutions)
	}
	if len(pitch.PainPoints.Differentiators) > 0 {
		line("Our Differentiators: %s", strings.Join(pitch.PainPoints.Differentiators, ", "))
	}

	if proof := pitch.SocialProof; proof != nil {
		section("## SOCIAL PROOF")
		if len(proof.Metrics) > 0 {
			line("Success Metrics: %s", strings.Join(proof.Metrics, ", "))
		}
		if len(proof.Testimonials) > 0 {
			line("Testimonials:")
			for _, t := range proof.Testimonials {
				line("  - %q", t)
			}
		}
		if len(proof.Logos) > 0 {
			line("Notable Customers: %s", strings.Join(proof.Logos, ", "))
		}
	}

	section("## CALL TO ACTION")
	line("Goal: %s", pitch.CTA.Goal)
	if pitch.CTA.Urgency != nil {
		line("Urgency: %s", *pitch.CTA.Urgency)
	}
	if len(pitch.CTA.NextSteps) > 0 {
		line("Next Steps: %s", strings.Join(pitch.CTA.NextSteps, ", "))
	}

	section("## SETTINGS")
	line("Tone: %s", pitch.Tone)
	line("Target Slides: %d", pitch.SlideCount)

	return strings.TrimRight(b.String(), "\n")
}

// BuildOutline derives the expected slide sequence from the pitch shape.
// It is informational; the agent loop decides the actual slides.
func BuildOutline(pitch PitchInput) []string {
	outline := []string{
		fmt.Sprintf("Title: %s", pitch.Product.Name),
		"The Problem",
	}
	if len(pitch.PainPoints.Problems) > 2 {
		outline = append(outline, "Pain Points Deep Dive")
	}
	outline = append(outline,
		fmt.Sprintf("Introducing %s", pitch.Product.Name),
		"Key Features & Benefits",
	)
	if len(pitch.PainPoints.Differentiators) > 0 {
		outline = append(outline, "Why We're Different")
	}
	if proof := pitch.SocialProof; proof != nil {
		if len(proof.Metrics) > 0 || len(proof.Testimonials) > 0 {
			outline = append(outline, "Proven Results")
		}
		if len(proof.Logos) > 0 {
			outline = append(outline, "Trusted By")
		}
	}
	if pitch.Product.Pricing != nil {
		outline = append(outline, "Pricing & Plans")
	}
	return append(outline, fmt.Sprintf("Call to Action: %s", pitch.CTA.Goal))
}
