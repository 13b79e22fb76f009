package models

const (
	// DefaultOutputPath is where the image is written when no path is given.
	DefaultOutputPath = "generated_image.png"

	// DefaultSize is the size hint used when none is given.
	DefaultSize = "1024x1024"
)

// SamplingConfig holds the generation parameters sent with every request.
type SamplingConfig struct {
	Temperature     float32 `yaml:"temperature"`
	TopP            float32 `yaml:"top_p"`
	TopK            int32   `yaml:"top_k"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

// DefaultSamplingConfig returns the sampling parameters used for image requests.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Temperature:     0.4,
		TopP:            1,
		TopK:            32,
		MaxOutputTokens: 4096,
	}
}

// IsZero reports whether no sampling parameter has been set.
func (s SamplingConfig) IsZero() bool {
	return s == SamplingConfig{}
}

// ImageGenerationInput represents the input for an image generation request.
type ImageGenerationInput struct {
	Prompt     string
	OutputPath string
	// Size is echoed to the user but is not part of the request payload.
	Size     string
	Sampling SamplingConfig
}

// InlineData is a binary payload embedded directly in a response.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// ContentPart is one unit of a response. Either field may be empty.
type ContentPart struct {
	Text       string
	InlineData *InlineData
}

// ImageGenerationResponse represents the response from an image generation request.
type ImageGenerationResponse struct {
	Parts    []ContentPart
	Provider string
}

// FirstInlineData returns the inline data of the first part that carries
// any, or nil. It does not stop at parts[0]: models that prepend a text part
// to the image still yield the image.
func (r *ImageGenerationResponse) FirstInlineData() *InlineData {
	if r == nil {
		return nil
	}
	for _, part := range r.Parts {
		if part.InlineData != nil {
			return part.InlineData
		}
	}
	return nil
}

// ImageGenerationResult describes an image that was written to disk.
type ImageGenerationResult struct {
	Path     string // absolute
	Bytes    int
	MIMEType string
	Provider string
}
