package client

import (
	"context"
	"strings"
	"sync"

	"github.com/1broseidon/imagen/internal/imagefile"
	"github.com/1broseidon/imagen/internal/logging"
	"github.com/1broseidon/imagen/models"
	"github.com/1broseidon/imagen/providers/googlegemini"
)

// DefaultModel is the image model used when none is configured.
const DefaultModel = "imagen-3.0-generate-001"

// Provider interface defines the methods an image provider must implement
type Provider interface {
	GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error)
	Close() error
}

// ProviderFactory builds a provider for the given credential.
type ProviderFactory func(ctx context.Context, apiKey, endpoint string) (Provider, error)

// Client requests images from a provider and stores them on disk
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	newProvider ProviderFactory
	provider    Provider
	logger      logging.Logger
	mu          sync.Mutex
}

// NewClient creates a new client. No provider is created until the first request.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		model:       DefaultModel,
		newProvider: newGeminiProvider,
		logger:      logging.NewDefaultLogger(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func newGeminiProvider(ctx context.Context, apiKey, endpoint string) (Provider, error) {
	var opts []googlegemini.Option
	if endpoint != "" {
		opts = append(opts, googlegemini.WithEndpoint(endpoint))
	}
	return googlegemini.NewGoogleGeminiProvider(ctx, apiKey, opts...)
}

// Model returns the model used for requests.
func (c *Client) Model() string {
	return c.model
}

// CheckCredential reports whether a credential is configured, without
// touching the network.
func (c *Client) CheckCredential() error {
	if c.apiKey == "" {
		return newError(KindMissingCredential, ErrMissingCredential)
	}
	return nil
}

// initializeProvider creates the provider on first use
func (c *Client) initializeProvider(ctx context.Context) (Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}

	if err := c.CheckCredential(); err != nil {
		return nil, err
	}

	p, err := c.newProvider(ctx, c.apiKey, c.endpoint)
	if err != nil {
		return nil, newError(KindTransport, err)
	}
	c.provider = p
	c.logger.Debug("Initialized image provider")
	return p, nil
}

// GenerateImage sends input.Prompt to the configured model and writes the
// first inline image of the response to input.OutputPath.
//
// Empty OutputPath, Size and Sampling fall back to their defaults. Failures
// are reported as *GenerationError; use KindOf to classify them.
func (c *Client) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResult, error) {
	input = withDefaults(input)

	if strings.TrimSpace(input.Prompt) == "" {
		return nil, newError(KindInvalidInput, ErrEmptyPrompt)
	}

	p, err := c.initializeProvider(ctx)
	if err != nil {
		c.logger.Error("Failed to initialize provider:", err)
		return nil, err
	}

	// The size hint is not part of the request payload.
	c.logger.Debugf("Generating image with model %s (size hint %s)", c.model, input.Size)
	resp, err := p.GenerateImage(ctx, c.model, input)
	if err != nil {
		c.logger.Error("Failed to generate image:", err)
		return nil, newError(KindTransport, err)
	}

	image := resp.FirstInlineData()
	if image == nil {
		c.logger.Warnf("Response contained %d parts and no inline image data", len(resp.Parts))
		return nil, newError(KindEmptyResponse, ErrNoImageGenerated)
	}

	path, err := imagefile.Write(input.OutputPath, image.Data)
	if err != nil {
		c.logger.Error("Failed to save image:", err)
		return nil, newError(KindStorage, err)
	}

	c.logger.Infof("Wrote %d bytes (%s) to %s", len(image.Data), image.MIMEType, path)
	return &models.ImageGenerationResult{
		Path:     path,
		Bytes:    len(image.Data),
		MIMEType: image.MIMEType,
		Provider: resp.Provider,
	}, nil
}

func withDefaults(input models.ImageGenerationInput) models.ImageGenerationInput {
	if input.OutputPath == "" {
		input.OutputPath = models.DefaultOutputPath
	}
	if input.Size == "" {
		input.Size = models.DefaultSize
	}
	if input.Sampling.IsZero() {
		input.Sampling = models.DefaultSamplingConfig()
	}
	return input
}

// Close releases the provider, if one was created
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil
	}
	err := c.provider.Close()
	c.provider = nil
	if err != nil {
		c.logger.Error("Error closing provider:", err)
	}
	return err
}
