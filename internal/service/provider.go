package service

import (
	"context"

	"github.com/callguard/spam-checker/internal/domain"
)

// Provider is the outbound carrier-lookup API with the spam-scoring add-on.
// Implementations must apply a bounded request timeout and never retry.
type Provider interface {
	Lookup(ctx context.Context, phoneNumber string) (*domain.ProviderResult, error)
}
