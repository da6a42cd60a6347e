package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"zenmarket/internal/models"
)

// Fallback replies returned when the model cannot be reached or answers badly
const (
	FallbackInsight        = "AI Insights currently unavailable. This retreat is perfect for those seeking peace and renewal."
	FallbackConcierge      = "I'm focusing on my breath right now. Please ask again in a moment."
	FallbackMarketplace    = "The collective consciousness is a bit cloudy. How else can I assist your search for peace?"
	FallbackRecommendation = "Find a peaceful forest retreat to reconnect with your practice."
	FallbackItinerary      = "Our itinerary architect is in silent meditation. Please try generating your plan again in a moment."
)

var (
	ErrAIUnavailable       = errors.New("ai service unavailable")
	ErrAIUnauthorized      = errors.New("ai service rejected credentials")
	ErrAIMalformedResponse = errors.New("ai service returned an unexpected response")
)

// AIError wraps a classified failure with the capability that hit it
type AIError struct {
	Op   string
	Kind error
	Err  error
}

func (e *AIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *AIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// TextRequest is one text completion
type TextRequest struct {
	Model           string
	Prompt          string
	Temperature     *float32
	DisableThinking bool
}

// ImageRequest is one image generation
type ImageRequest struct {
	Model       string
	Prompt      string
	AspectRatio models.AspectRatio
}

// GeneratedImage is the raw payload returned by the image model
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// AIClient is the transport to the hosted generative model
type AIClient interface {
	CompleteText(ctx context.Context, req TextRequest) (string, error)
	GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error)
}

// AIModels names the models used per capability
type AIModels struct {
	Text   string
	Reason string
	Image  string
}

// AIGateway exposes the concierge capabilities. Every call is one-shot
// and returns its fallback instead of an error.
type AIGateway struct {
	client AIClient
	models AIModels
	visual *VisualProcessor
	logger *slog.Logger
}

func NewAIGateway(client AIClient, aiModels AIModels, visual *VisualProcessor, logger *slog.Logger) *AIGateway {
	if logger == nil {
		logger = slog.Default()
	}
	if visual == nil {
		visual = NewVisualProcessor(0)
	}
	return &AIGateway{client: client, models: aiModels, visual: visual, logger: logger}
}

func temperature(t float32) *float32 { return &t }

// RetreatInsight summarizes who a retreat suits and its vibe
func (g *AIGateway) RetreatInsight(ctx context.Context, retreat *models.Retreat) string {
	if retreat == nil {
		return FallbackInsight
	}

	prompt := fmt.Sprintf(`Generate a short "AI Insight" for this retreat. Focus on who would benefit most and a "vibe" summary in 3 bullet points.
Title: %s
Description: %s`, retreat.Title, retreat.Description)

	return g.text(ctx, "insight", TextRequest{
		Model:       g.models.Text,
		Prompt:      prompt,
		Temperature: temperature(0.7),
	}, FallbackInsight)
}

// AskConcierge answers a question about one retreat
func (g *AIGateway) AskConcierge(ctx context.Context, question string, retreat *models.Retreat) string {
	if retreat == nil || strings.TrimSpace(question) == "" {
		return FallbackConcierge
	}

	prompt := fmt.Sprintf(`You are Zen Brain AI, an expert concierge for ZenMarket retreats.
RETREAT DETAILS:
Title: %s
Price: $%d
Location: %s, %s

USER QUESTION: %s
Answer accurately and professionally. Keep it under 80 words.`,
		retreat.Title, retreat.Price, retreat.Location.City, retreat.Location.Country, question)

	return g.text(ctx, "concierge", TextRequest{
		Model:  g.models.Text,
		Prompt: prompt,
	}, FallbackConcierge)
}

// AskMarketplace is the marketplace-wide assistant. Only the first ten listings are summarized.
func (g *AIGateway) AskMarketplace(ctx context.Context, message string, listings []*models.Retreat, total int) string {
	if strings.TrimSpace(message) == "" {
		return FallbackMarketplace
	}

	sample := listings
	if len(sample) > 10 {
		sample = sample[:10]
	}
	summaries := make([]string, 0, len(sample))
	for _, r := range sample {
		summaries = append(summaries, fmt.Sprintf("%s in %s ($%d)", r.Title, r.Location.Country, r.Price))
	}

	prompt := fmt.Sprintf(`You are the "Deep Brain AI" for ZenMarket, a global wellness marketplace with %d+ retreats.

MARKETPLACE CONTEXT:
- Total retreats: %d
- Categories: %s
- Sample listings: %s...

USER REQUEST: "%s"

YOUR ROLE:
1. Act as a high-level wellness architect.
2. If they ask for recommendations, suggest categories or countries based on their vibe.
3. Be encouraging, spiritual, yet professional.
4. Always mention that ZenMarket has a full event calendar for browsing.`,
		total, total, strings.Join(models.Categories[:6], ", ")+", etc.", strings.Join(summaries, ", "), message)

	return g.text(ctx, "marketplace", TextRequest{
		Model:           g.models.Reason,
		Prompt:          prompt,
		Temperature:     temperature(0.8),
		DisableThinking: true,
	}, FallbackMarketplace)
}

// GenerateItinerary drafts a day-by-day plan
func (g *AIGateway) GenerateItinerary(ctx context.Context, params models.TripPlanParams) string {
	interests := strings.TrimSpace(params.Interests)
	if interests == "" {
		interests = "open to anything"
	}

	prompt := fmt.Sprintf(`You are the Deep Brain AI itinerary architect for ZenMarket.
Design a %d-day "%s" wellness itinerary with a total budget of $%d.
Visitor interests: %s

Format:
- Start with a one-line title.
- Then one section per day, headed "Day N: <theme>", with morning, afternoon and evening activities.
- Finish with a short packing list and a budget breakdown.`,
		params.Duration, params.Type, params.Budget, interests)

	return g.text(ctx, "itinerary", TextRequest{
		Model:       g.models.Reason,
		Prompt:      prompt,
		Temperature: temperature(0.7),
	}, FallbackItinerary)
}

// Recommend gives a one-sentence suggestion for the dashboard
func (g *AIGateway) Recommend(ctx context.Context, interests []string) string {
	prompt := fmt.Sprintf("Based on the user's interests: %s, provide a short, inspiring recommendation (one sentence) for their next wellness retreat.",
		strings.Join(interests, ", "))

	return g.text(ctx, "recommendation", TextRequest{
		Model:       g.models.Text,
		Prompt:      prompt,
		Temperature: temperature(0.8),
	}, FallbackRecommendation)
}

// VisualizeSanctuary renders an illustrative image. Returns nil on any failure.
func (g *AIGateway) VisualizeSanctuary(ctx context.Context, prompt string, ratio models.AspectRatio) *models.Visual {
	if strings.TrimSpace(prompt) == "" {
		return nil
	}
	if !ratio.IsValid() {
		ratio = models.DefaultAspectRatio
	}

	img, err := g.client.GenerateImage(ctx, ImageRequest{
		Model:       g.models.Image,
		Prompt:      fmt.Sprintf("A serene, photorealistic wellness sanctuary: %s. Soft natural light, calm atmosphere.", prompt),
		AspectRatio: ratio,
	})
	if err == nil && (img == nil || len(img.Data) == 0) {
		err = &AIError{Op: "visualize", Kind: ErrAIMalformedResponse}
	}
	if err != nil {
		g.logFailure("visualize", err)
		return nil
	}

	visual, err := g.visual.Process(img.Data, ratio)
	if err != nil {
		g.logFailure("visualize", err)
		return nil
	}
	return visual
}

func (g *AIGateway) text(ctx context.Context, op string, req TextRequest, fallback string) string {
	reply, err := g.client.CompleteText(ctx, req)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = &AIError{Op: op, Kind: ErrAIMalformedResponse}
	}
	if err != nil {
		g.logFailure(op, err)
		return fallback
	}
	return strings.TrimSpace(reply)
}

func (g *AIGateway) logFailure(op string, err error) {
	kind := "unknown"
	switch {
	case errors.Is(err, ErrAIUnavailable):
		kind = "unavailable"
	case errors.Is(err, ErrAIUnauthorized):
		kind = "unauthorized"
	case errors.Is(err, ErrAIMalformedResponse):
		kind = "malformed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = "cancelled"
	}
	g.logger.Warn("ai request failed, using fallback", "capability", op, "kind", kind, "error", err)
}
