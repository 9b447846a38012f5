package generator

import (
	"context"
	"fmt"
	"net/http"

	"study-deck/internal/config"
	"study-deck/internal/domain"
	"study-deck/internal/logger"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// New builds the MaterialGenerator selected by cfg.Provider.
func New(ctx context.Context, cfg config.GeneratorConfig) (domain.MaterialGenerator, error) {
	l := logger.Get()
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "", "gemini":
		l.Info("Using Gemini study generator", zap.String("model", cfg.Model))
		return NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.Timeout)

	case "ollama":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("ollama server url is required")
		}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
			ollama.WithFormat("json"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		l.Info("Using Ollama study generator", zap.String("model", cfg.Model), zap.String("server", cfg.ServerURL))
		return NewLangchainGenerator(llm, "ollama", cfg.Temperature, cfg.Timeout), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		l.Info("Using OpenAI study generator", zap.String("model", cfg.Model))
		return NewLangchainGenerator(llm, "openai", cfg.Temperature, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Provider)
}
