package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/retry"
	"decksnap/slides-api/internal/domain/sales"
)

type stubProvider struct {
	replies  []string
	requests []llm.ChatCompletionRequest
}

func (p *stubProvider) CreateChatCompletion(_ context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	p.requests = append(p.requests, req)
	idx := len(p.requests) - 1
	if idx >= len(p.replies) {
		idx = len(p.replies) - 1
	}
	return &llm.ChatCompletionResponse{
		Choices: []llm.ChatCompletionChoice{{
			Message: llm.ChatMessage{Role: "assistant", Content: p.replies[idx]},
		}},
	}, nil
}

func newGenerator(p llm.Provider) *sales.Generator {
	policy := retry.Policy{MaxRetries: 0, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffStrategy: retry.BackoffFixed}
	return sales.NewGenerator(llm.NewGateway(p, "test-model", policy, zerolog.Nop()), zerolog.Nop())
}

func samplePitch() sales.PitchInput {
	pricing := "Starting at $99/mo"
	return sales.PitchInput{
		Product: sales.ProductInfo{
			Name:        "ShipFast",
			Description: "Continuous delivery for small teams without the platform team overhead.",
			KeyFeatures: []string{"one-click rollback", "preview environments"},
			Pricing:     &pricing,
		},
		Market: sales.TargetMarket{Industry: "SaaS", Audience: "CTOs"},
		PainPoints: sales.PainPoints{
			Problems:        []string{"slow releases", "fragile pipelines", "on-call fatigue"},
			Differentiators: []string{"zero-config"},
		},
		SocialProof: &sales.SocialProof{
			Metrics: []string{"10x faster deploys"},
			Logos:   []string{"Acme"},
		},
		CTA: sales.CallToAction{Goal: "Start free trial"},
	}
}

func TestGeneratorGenerate(t *testing.T) {
	provider := &stubProvider{replies: []string{
		"HOOK: Ship every day.\nPROBLEM: Releases crawl.",
		`  "Ship Every Day"  `,
	}}

	content, err := newGenerator(provider).Generate(context.Background(), samplePitch())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(content.Text, "HOOK") {
		t.Errorf("text = %q, want pitch narrative", content.Text)
	}
	if content.Title != "Ship Every Day" {
		t.Errorf("title = %q, want trimmed %q", content.Title, "Ship Every Day")
	}

	if len(provider.requests) != 2 {
		t.Fatalf("completion calls = %d, want 2", len(provider.requests))
	}
	system := llm.ContentText(provider.requests[0].Messages[0].Content)
	if !strings.Contains(system, "professional tone") {
		t.Errorf("system prompt missing default tone: %q", system)
	}
	if !strings.Contains(system, "CTOs in SaaS") {
		t.Errorf("system prompt missing audience/industry: %q", system)
	}
}

func TestGeneratorTitleFallsBackToProductName(t *testing.T) {
	provider := &stubProvider{replies: []string{"narrative", "   "}}

	content, err := newGenerator(provider).Generate(context.Background(), samplePitch())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if content.Title != "ShipFast" {
		t.Errorf("title = %q, want product name fallback", content.Title)
	}
}

func TestBuildContextSections(t *testing.T) {
	ctx := sales.BuildContext(samplePitch())

	for _, want := range []string{
		"## PRODUCT/SERVICE",
		"Name: ShipFast",
		"## TARGET MARKET",
		"Audience: CTOs",
		"## PAIN POINTS & SOLUTION",
		"Problems We Solve: slow releases, fragile pipelines, on-call fatigue",
		"## SOCIAL PROOF",
		"Notable Customers: Acme",
		"## CALL TO ACTION",
		"Goal: Start free trial",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q", want)
		}
	}

	bare := samplePitch()
	bare.SocialProof = nil
	if strings.Contains(sales.BuildContext(bare), "## SOCIAL PROOF") {
		t.Error("context includes empty social proof section")
	}
}

func TestBuildOutlineFollowsPitchShape(t *testing.T) {
	outline := sales.BuildOutline(samplePitch())

	want := []string{
		"Title: ShipFast",
		"The Problem",
		"Pain Points Deep Dive",
		"Introducing ShipFast",
		"Key Features & Benefits",
		"Why We're Different",
		"Proven Results",
		"Trusted By",
		"Pricing & Plans",
		"Call to Action: Start free trial",
	}
	if len(outline) != len(want) {
		t.Fatalf("outline = %v, want %v", outline, want)
	}
	for i := range want {
		if outline[i] != want[i] {
			t.Errorf("outline[%d] = %q, want %q", i, outline[i], want[i])
		}
	}

	minimal := samplePitch()
	minimal.PainPoints.Problems = minimal.PainPoints.Problems[:1]
	minimal.PainPoints.Differentiators = nil
	minimal.SocialProof = nil
	minimal.Product.Pricing = nil
	short := sales.BuildOutline(minimal)
	if len(short) != 5 {
		t.Errorf("minimal outline = %v, want 5 entries", short)
	}
}
