package client

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiExtractionPrompt = "Extract only the visible text from this medical bill/receipt image."

const geminiTimeout = 30 * time.Second

// GeminiClient wraps the Gemini vision model as the primary OCR engine.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed OCR client.
func NewGeminiClient(apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("Gemini OCR client initialized with model %s", modelName)

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// ExtractTextFromImage sends raw image bytes to Gemini and returns the
// plain text it reads off the bill. format is the image format suffix
// ("png", "jpeg"), not a full MIME type.
func (gc *GeminiClient) ExtractTextFromImage(ctx context.Context, imageData []byte, format string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	if format == "" {
		format = "png"
	}

	parts := []genai.Part{
		genai.ImageData(format, imageData),
		genai.Text(geminiExtractionPrompt),
	}

	resp, err := gc.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini content generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return text.String(), nil
}

// Close releases the underlying API client.
func (gc *GeminiClient) Close() error {
	return gc.client.Close()
}
