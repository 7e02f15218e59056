package llm

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "phi3:mini"
	// DefaultBaseURL points at a local Ollama-compatible endpoint.
	DefaultBaseURL = "http://localhost:11434/v1"

	// ErrNoChoicesInResponse is returned when the completion has no choices.
	ErrNoChoicesInResponse = "no choices in response"
)

// GenerateOptions tune a single generation call. Model overrides the
// client's configured default when set.
type GenerateOptions struct {
	Model       string
	Temperature float64
}

// GenerateClient is the generative-text-service contract: one
// request/response call producing the raw text completion. The call
// must respect ctx cancellation.
type GenerateClient interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// OpenAIClient implements GenerateClient against any chat-completions
// compatible endpoint (a local Ollama server in the default setup).
type OpenAIClient struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIClient creates a client for the given endpoint and default
// model. Empty arguments fall back to the local-inference defaults.
func NewOpenAIClient(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIClient {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		// Ollama ignores the key but the SDK requires one.
		apiKey = "ollama"
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &OpenAIClient{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// Generate sends the prompt as a single completion request and
// returns the raw response text.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(opts.Temperature),
	}

	requestID := ExtractRequestID(ctx)
	if c.logger != nil && c.debugMode {
		c.logger.Debug("llm_api_request",
			zap.String("model", model),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt_preview", SanitizePrompt(prompt, true)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)

	if err != nil {
		if c.logger != nil && c.debugMode {
			c.logger.Debug("llm_api_error",
				zap.String("model", model),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}
	content := resp.Choices[0].Message.Content

	if c.logger != nil && c.debugMode {
		c.logger.Debug("llm_api_response",
			zap.String("model", model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", SanitizeResponse(content, true)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}
