package ai

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/semaphore"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	EmbeddingModel string
	ChatModel      string
	MaxRetries     int
	Timeout        time.Duration
	// MaxConcurrent bounds simultaneous upstream calls to respect
	// provider rate limits; excess callers queue.
	MaxConcurrent int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://api.openai.com/v1",
		APIKey:         "",
		EmbeddingModel: "text-embedding-3-small",
		ChatModel:      "gpt-4o-mini",
		MaxRetries:     3,
		Timeout:        30 * time.Second,
		MaxConcurrent:  5,
	}
}

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// UsageRecorder meters upstream calls. *finops.CostMonitor satisfies it.
type UsageRecorder interface {
	Record(operation, model string, inputTokens, outputTokens int, latency time.Duration)
	RecordFailure(operation string)
}

// Provider provides AI capabilities including chat completion and embedding.
// It is safe for concurrent use.
type Provider struct {
	client *openai.Client
	config *Config
	sem    *semaphore.Weighted
	usage  UsageRecorder
}

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults for unset values
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxConcurrent == 0 {
		cfg.MaxConcurrent = 5
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		sem:    semaphore.NewWeighted(cfg.MaxConcurrent),
	}, nil
}

// SetUsageRecorder attaches a usage recorder. Must be called before
// the provider is shared across goroutines.
func (p *Provider) SetUsageRecorder(recorder UsageRecorder) {
	p.usage = recorder
}

// EmbeddingModel returns the configured embedding model name.
func (p *Provider) EmbeddingModel() string {
	return p.config.EmbeddingModel
}

// Embedding generates an embedding vector for the given text.
func (p *Provider) Embedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embedding vectors for a batch of texts. The
// result has the same length and order as the input.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var result [][]float32
	start := time.Now()
	err := p.doWithRetry(ctx, func() error {
		req := openai.EmbeddingRequest{
			Input: texts,
			Model: openai.EmbeddingModel(p.config.EmbeddingModel),
		}

		resp, err := p.client.CreateEmbeddings(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("embedding response length mismatch: got %d, want %d", len(resp.Data), len(texts))
		}
		result = make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			result[i] = d.Embedding
		}
		if p.usage != nil {
			p.usage.Record("embedding", p.config.EmbeddingModel, resp.Usage.PromptTokens, 0, time.Since(start))
		}
		return nil
	})
	if err != nil {
		if p.usage != nil {
			p.usage.RecordFailure("embedding")
		}
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	return result, nil
}

// Chat performs a chat completion.
func (p *Provider) Chat(ctx context.Context, messages []Message) (string, error) {
	var result string
	start := time.Now()
	err := p.doWithRetry(ctx, func() error {
		llmMessages := make([]openai.ChatCompletionMessage, len(messages))
		for i, msg := range messages {
			llmMessages[i] = openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			}
		}

		req := openai.ChatCompletionRequest{
			Model:    p.config.ChatModel,
			Messages: llmMessages,
		}

		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		if p.usage != nil {
			p.usage.Record("chat", p.config.ChatModel, resp.Usage.PromptTokens, resp.Usage.CompletionTokens, time.Since(start))
		}
		return nil
	})
	if err != nil {
		if p.usage != nil {
			p.usage.RecordFailure("chat")
		}
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return result, nil
}

// Validate validates the provider configuration by testing API connectivity.
func (p *Provider) Validate(ctx context.Context) error {
	if p.config.APIKey == "" {
		return fmt.Errorf("API key is required, set HRASSIST_AI_API_KEY environment variable")
	}

	if _, err := p.Embedding(ctx, "test"); err != nil {
		return fmt.Errorf("embedding validation failed: %w", err)
	}

	slog.Info("AI provider validated successfully",
		"embedding_model", p.config.EmbeddingModel,
		"chat_model", p.config.ChatModel)

	return nil
}

// doWithRetry executes a function with exponential backoff retry while
// holding a semaphore slot so no more than MaxConcurrent upstream calls
// are in flight at once.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("AI request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
