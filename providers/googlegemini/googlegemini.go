package googlegemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/1broseidon/imagen/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ProviderName identifies this provider in responses and logs.
const ProviderName = "googlegemini"

// contentGenerator is the part of *genai.GenerativeModel the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GoogleGeminiProvider implements image generation on top of the Gemini SDK
type GoogleGeminiProvider struct {
	client *genai.Client

	// newModel is swapped out in tests.
	newModel func(modelName string, sampling models.SamplingConfig) contentGenerator
}

// Option configures the underlying SDK client.
type Option func(*settings)

type settings struct {
	endpoint string
}

// WithEndpoint overrides the Gemini API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// NewGoogleGeminiProvider creates a new Google Gemini provider using apiKey
func NewGoogleGeminiProvider(ctx context.Context, apiKey string, opts ...Option) (*GoogleGeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is empty")
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if s.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(s.endpoint))
	}

	client, err := genai.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	p := &GoogleGeminiProvider{client: client}
	p.newModel = p.generativeModel
	return p, nil
}

// Close closes the Google Gemini client
func (p *GoogleGeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func (p *GoogleGeminiProvider) generativeModel(modelName string, sampling models.SamplingConfig) contentGenerator {
	model := p.client.GenerativeModel(modelName)
	applySampling(model, sampling)
	return model
}

func applySampling(model *genai.GenerativeModel, sampling models.SamplingConfig) {
	model.SetTemperature(sampling.Temperature)
	model.SetTopP(sampling.TopP)
	if sampling.TopK > 0 {
		model.SetTopK(sampling.TopK)
	}
	if sampling.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(sampling.MaxOutputTokens)
	}
}

// GenerateImage sends the prompt to modelName and returns the response parts.
// The SDK panics on response parts it cannot decode; that panic is returned
// as an error.
func (p *GoogleGeminiProvider) GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (_ *models.ImageGenerationResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gemini SDK failed to handle response: %v", r)
		}
	}()

	model := p.newModel(modelName, input.Sampling)

	resp, err := model.GenerateContent(ctx, genai.Text(input.Prompt))
	if err != nil {
		return nil, annotate(err)
	}

	return &models.ImageGenerationResponse{
		Parts:    convertParts(resp),
		Provider: ProviderName,
	}, nil
}

// convertParts maps the first candidate's parts. Part types other than
// text and blobs are skipped.
func convertParts(resp *genai.GenerateContentResponse) []models.ContentPart {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil
	}

	parts := make([]models.ContentPart, 0, len(candidate.Content.Parts))
	for _, part := range candidate.Content.Parts {
		switch v := part.(type) {
		case genai.Blob:
			parts = append(parts, models.ContentPart{
				InlineData: &models.InlineData{MIMEType: v.MIMEType, Data: v.Data},
			})
		case *genai.Blob:
			if v == nil {
				continue
			}
			parts = append(parts, models.ContentPart{
				InlineData: &models.InlineData{MIMEType: v.MIMEType, Data: v.Data},
			})
		case genai.Text:
			parts = append(parts, models.ContentPart{Text: string(v)})
		}
	}
	return parts
}

// annotate adds the HTTP status to errors raised by the REST transport.
func annotate(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini API returned status %d: %w", apiErr.Code, err)
	}
	return err
}
