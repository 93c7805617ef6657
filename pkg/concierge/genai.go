package concierge

import (
	"context"
	"errors"

	"google.golang.org/genai"

	merrors "github.com/bensonglobal/meridian/pkg/errors"
	"github.com/bensonglobal/meridian/pkg/httputil"
)

// Generator produces a reply for prepared conversation turns.
type Generator interface {
	Generate(ctx context.Context, turns []Message) (string, error)
	Model() string
}

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini-backed generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, merrors.New(merrors.ErrCodeUnavailable, "GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, merrors.Wrap(merrors.ErrCodeUnavailable, err, "create GenAI client")
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

// Model returns the model name.
func (g *GenAIGenerator) Model() string { return g.model }

// Generate sends turns to the model and returns its text.
// Rate limits and server errors are marked retryable.
func (g *GenAIGenerator) Generate(ctx context.Context, turns []Message) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleModel)
		if t.Role == RoleUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		wrapped := merrors.Wrap(merrors.ErrCodeNetwork, err, "generate content")
		if httputil.RetryableStatus(statusCode(err)) {
			return "", httputil.Retryable(wrapped)
		}
		return "", wrapped
	}
	return resp.Text(), nil
}

func statusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
