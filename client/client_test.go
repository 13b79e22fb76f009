package client

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/1broseidon/imagen/common"
	"github.com/1broseidon/imagen/internal/logging"
	"github.com/1broseidon/imagen/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	resp   *models.ImageGenerationResponse
	err    error
	calls  int
	model  string
	input  models.ImageGenerationInput
	closed bool
}

func (f *fakeProvider) GenerateImage(ctx context.Context, modelName string, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	f.calls++
	f.model = modelName
	f.input = input
	return f.resp, f.err
}

func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

// factoryFor returns a factory handing out p and counting invocations.
func factoryFor(p *fakeProvider, built *int) ProviderFactory {
	return func(ctx context.Context, apiKey, endpoint string) (Provider, error) {
		*built++
		return p, nil
	}
}

func imageResponse(data []byte) *models.ImageGenerationResponse {
	return &models.ImageGenerationResponse{
		Parts: []models.ContentPart{
			{InlineData: &models.InlineData{MIMEType: "image/png", Data: data}},
		},
		Provider: "fake",
	}
}

func TestGenerateImageMissingCredential(t *testing.T) {
	p := &fakeProvider{resp: imageResponse([]byte("img"))}
	built := 0
	c := NewClient(WithProviderFactory(factoryFor(p, &built)))

	out := filepath.Join(t.TempDir(), "out.png")
	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: out})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredential))
	assert.Equal(t, KindMissingCredential, KindOf(err))
	assert.Zero(t, built, "provider must not be constructed without a credential")
	assert.Zero(t, p.calls)
	assert.NoFileExists(t, out)
}

func TestGenerateImageWritesFirstInlinePayload(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0, 1, 2}
	p := &fakeProvider{resp: &models.ImageGenerationResponse{
		Parts: []models.ContentPart{
			{Text: "Here you go"},
			{InlineData: &models.InlineData{MIMEType: "image/png", Data: data}},
			{InlineData: &models.InlineData{MIMEType: "image/png", Data: []byte("second")}},
		},
		Provider: "fake",
	}}
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(p, &built)))

	out := filepath.Join(t.TempDir(), "out.png")
	res, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: out})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, out, res.Path)
	assert.Equal(t, len(data), res.Bytes)
	assert.Equal(t, "image/png", res.MIMEType)
	assert.Equal(t, "fake", res.Provider)
	assert.Equal(t, 1, p.calls)
}

func TestGenerateImageEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *models.ImageGenerationResponse
	}{
		{"no parts", &models.ImageGenerationResponse{}},
		{"text only", &models.ImageGenerationResponse{Parts: []models.ContentPart{{Text: "I can't draw that"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := 0
			c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(&fakeProvider{resp: tt.resp}, &built)))

			out := filepath.Join(t.TempDir(), "out.png")
			_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: out})

			assert.ErrorIs(t, err, ErrNoImageGenerated)
			assert.Equal(t, KindEmptyResponse, KindOf(err))
			assert.NoFileExists(t, out)
		})
	}
}

func TestGenerateImageCreatesParentDirectories(t *testing.T) {
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(&fakeProvider{resp: imageResponse([]byte("img"))}, &built)))

	out := filepath.Join(t.TempDir(), "output", "mockups", "ui.png")
	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "UI mockup", OutputPath: out})
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestGenerateImageTransportError(t *testing.T) {
	boom := errors.New("429 quota exceeded")
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(&fakeProvider{err: boom}, &built)))

	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: filepath.Join(t.TempDir(), "x.png")})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestGenerateImageProviderFactoryError(t *testing.T) {
	boom := errors.New("dial failed")
	c := NewClient(WithAPIKey("key"), WithProviderFactory(func(ctx context.Context, apiKey, endpoint string) (Provider, error) {
		return nil, boom
	}))

	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestGenerateImageStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(&fakeProvider{resp: imageResponse([]byte("img"))}, &built)))

	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: filepath.Join(blocker, "out.png")})

	require.Error(t, err)
	assert.Equal(t, KindStorage, KindOf(err))
}

func TestGenerateImageEmptyPrompt(t *testing.T) {
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(&fakeProvider{}, &built)))

	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "   "})

	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Zero(t, built)
}

func TestGenerateImageAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	p := &fakeProvider{resp: imageResponse([]byte("img"))}
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(p, &built)))

	res, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, p.model)
	assert.Equal(t, models.DefaultOutputPath, p.input.OutputPath)
	assert.Equal(t, models.DefaultSize, p.input.Size)
	assert.Equal(t, models.DefaultSamplingConfig(), p.input.Sampling)
	assert.Equal(t, models.DefaultOutputPath, filepath.Base(res.Path))
	assert.FileExists(t, filepath.Join(dir, models.DefaultOutputPath))
}

func TestGenerateImageForwardsSamplingAndModel(t *testing.T) {
	p := &fakeProvider{resp: imageResponse([]byte("img"))}
	built := 0
	c := NewClient(WithAPIKey("key"), WithModel("gemini-2.5-flash-image"), WithProviderFactory(factoryFor(p, &built)))

	sampling := models.SamplingConfig{Temperature: 0.9, TopP: 0.5, TopK: 8, MaxOutputTokens: 1024}
	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{
		Prompt:     "cat",
		OutputPath: filepath.Join(t.TempDir(), "cat.png"),
		Size:       "512x512",
		Sampling:   sampling,
	})
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash-image", p.model)
	assert.Equal(t, sampling, p.input.Sampling)
	assert.Equal(t, "512x512", p.input.Size)
}

func TestProviderIsBuiltOnceAndClosed(t *testing.T) {
	p := &fakeProvider{resp: imageResponse([]byte("img"))}
	built := 0
	c := NewClient(WithAPIKey("key"), WithProviderFactory(factoryFor(p, &built)))

	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: filepath.Join(dir, name)})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, built)
	require.NoError(t, c.Close())
	assert.True(t, p.closed)
	assert.NoError(t, c.Close())
}

func TestClientLogsAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	built := 0
	c := NewClient(
		WithLogger(logging.NewLogger(&buf)),
		WithLogLevel(common.InfoLevel),
		WithAPIKey("key"),
		WithProviderFactory(factoryFor(&fakeProvider{resp: imageResponse([]byte("img"))}, &built)),
	)

	_, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "cat", OutputPath: filepath.Join(t.TempDir(), "cat.png")})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "INFO: Wrote 3 bytes (image/png)")
	assert.NotContains(t, buf.String(), "DEBUG")
}

func TestGenerationErrorMessage(t *testing.T) {
	err := newError(KindEmptyResponse, ErrNoImageGenerated)
	assert.Equal(t, "empty response: no image generated", err.Error())
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestCheckCredential(t *testing.T) {
	assert.Equal(t, KindMissingCredential, KindOf(NewClient().CheckCredential()))
	assert.NoError(t, NewClient(WithAPIKey("key")).CheckCredential())
}

func TestMissingCredentialMessageIsTransportNeutral(t *testing.T) {
	err := NewClient().CheckCredential()
	assert.Equal(t, "missing credential: API key not configured", err.Error())
	assert.NotContains(t, err.Error(), "GEMINI_API_KEY")
}
