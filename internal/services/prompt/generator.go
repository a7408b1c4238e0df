package prompt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/phambaophuc/ai-image-studio/internal/apperrors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://router.huggingface.co/v1"
	DefaultModel   = "meta-llama/Llama-4-Scout-17B-16E-Instruct:fireworks-ai"
	defaultTimeout = 30 * time.Second
)

// ErrNoPrompt means the endpoint answered but carried no usable prompt.
var ErrNoPrompt = errors.New("no prompt returned from LLM")

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Generator asks an OpenAI-compatible chat endpoint for a creative image prompt.
type Generator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewGenerator(opts Options) *Generator {
	cfg := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.HTTPClient = httpClient

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// GeneratePrompt returns the trimmed content of the first choice. A reply
// without content yields ErrNoPrompt; transport and status failures are
// returned as transport errors.
func (g *Generator) GeneratePrompt(ctx context.Context) (string, error) {
	const op = "prompt.GeneratePrompt"

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
		},
	})
	if err != nil {
		g.logger.Error("Prompt generation failed", zap.String("model", g.model), zap.Error(err))
		return "", apperrors.Wrap(apperrors.KindTransport, op,
			"An error occurred while generating the prompt.", err)
	}

	if len(resp.Choices) == 0 {
		g.logger.Warn("No prompt returned from LLM", zap.String("model", g.model))
		return "", ErrNoPrompt
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		g.logger.Warn("Empty prompt returned from LLM", zap.String("model", g.model))
		return "", ErrNoPrompt
	}

	return text, nil
}
