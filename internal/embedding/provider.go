package embedding

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/models"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
)

const (
	ProviderHashing = "hashing"
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"
)

// Options selects and configures an embedding backend.
type Options struct {
	Provider  string
	Dimension int
	URL       string
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	Breaker   resilience.CircuitBreakerConfig
}

// New builds the configured Embedder. Remote backends are registered in
// breakers under their provider name.
func New(opts Options, breakers *resilience.CircuitBreakerRegistry) (scoring.Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderHashing:
		dim := opts.Dimension
		if dim == 0 {
			dim = models.DefaultEmbeddingDimension
		}
		embedder, err := models.NewHashingEmbedder(dim)
		if err != nil {
			return nil, err
		}
		return embedder, nil

	case ProviderOllama:
		backend := NewOllamaEmbedder(opts.URL, opts.Model, opts.Timeout)
		return NewGuarded(backend, breakers.GetOrCreate(ProviderOllama, opts.Breaker)), nil

	case ProviderOpenAI:
		if opts.APIKey == "" && opts.BaseURL == "" {
			return nil, fmt.Errorf("openai embedding provider needs an API key or a base URL")
		}
		backend := NewOpenAIEmbedder(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout)
		return NewGuarded(backend, breakers.GetOrCreate(ProviderOpenAI, opts.Breaker)), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider %q", opts.Provider)
	}
}
