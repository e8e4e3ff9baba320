package embedding

import (
	"context"

	"github.com/ZanzyTHEbar/flowdesk-ml/internal/resilience"
	"github.com/ZanzyTHEbar/flowdesk-ml/internal/scoring"
)

// Guarded routes every Embed call through a circuit breaker.
type Guarded struct {
	next    scoring.Embedder
	breaker *resilience.CircuitBreaker
}

func NewGuarded(next scoring.Embedder, breaker *resilience.CircuitBreaker) *Guarded {
	return &Guarded{next: next, breaker: breaker}
}

func (g *Guarded) Embed(ctx context.Context, text string) ([]float64, error) {
	var vec []float64
	err := g.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		vec, err = g.next.Embed(ctx, text)
		return err
	})
	return vec, err
}
