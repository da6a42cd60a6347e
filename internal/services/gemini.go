package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"zenmarket/internal/config"
)

// GeminiClient talks to the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient builds a client for the Gemini developer API.
// baseURL overrides the API endpoint and is normally empty.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &AIError{Op: "connect", Kind: ErrAIUnavailable, Err: errors.New("no api key configured")}
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &AIError{Op: "connect", Kind: ErrAIUnavailable, Err: err}
	}
	return &GeminiClient{client: client}, nil
}

// NewAIClient returns the Gemini client when a key is configured, otherwise the offline client
func NewAIClient(ctx context.Context, cfg config.AIConfig) AIClient {
	if cfg.APIKey == "" {
		return OfflineAIClient{}
	}
	client, err := NewGeminiClient(ctx, cfg.APIKey, "")
	if err != nil {
		return OfflineAIClient{}
	}
	return client
}

func (c *GeminiClient) CompleteText(ctx context.Context, req TextRequest) (string, error) {
	gc := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.DisableThinking {
		gc.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), gc)
	if err != nil {
		return "", classifyGeminiError("generate content", err)
	}

	text := resp.Text()
	if text == "" {
		return "", &AIError{Op: "generate content", Kind: ErrAIMalformedResponse, Err: errors.New("no text in response")}
	}
	return text, nil
}

func (c *GeminiClient) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	resp, err := c.client.Models.GenerateImages(ctx, req.Model, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    string(req.AspectRatio),
	})
	if err != nil {
		return nil, classifyGeminiError("generate images", err)
	}

	for _, generated := range resp.GeneratedImages {
		if generated == nil || generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		mime := generated.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &GeneratedImage{Data: generated.Image.ImageBytes, MIMEType: mime}, nil
	}

	return nil, &AIError{Op: "generate images", Kind: ErrAIMalformedResponse, Err: errors.New("no image in response")}
}

// classifyGeminiError maps SDK failures onto the gateway error kinds
func classifyGeminiError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &AIError{Op: op, Kind: ErrAIUnavailable, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AIError{Op: op, Kind: ErrAIUnauthorized, Err: err}
		case http.StatusBadRequest:
			return &AIError{Op: op, Kind: ErrAIMalformedResponse, Err: err}
		default:
			return &AIError{Op: op, Kind: ErrAIUnavailable, Err: err}
		}
	}

	return &AIError{Op: op, Kind: ErrAIUnavailable, Err: fmt.Errorf("transport: %w", err)}
}

// OfflineAIClient is used when no API key is configured. Every call reports the service unavailable.
type OfflineAIClient struct{}

func (OfflineAIClient) CompleteText(context.Context, TextRequest) (string, error) {
	return "", &AIError{Op: "generate content", Kind: ErrAIUnavailable, Err: errors.New("offline mode")}
}

func (OfflineAIClient) GenerateImage(context.Context, ImageRequest) (*GeneratedImage, error) {
	return nil, &AIError{Op: "generate images", Kind: ErrAIUnavailable, Err: errors.New("offline mode")}
}
