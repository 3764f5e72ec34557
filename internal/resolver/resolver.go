// Package resolver finds display image URLs for crops through an
// ordered fallback chain: local cache first, then photo providers in
// priority order. An empty result means "use a placeholder icon" and
// is never an error.
package resolver

import (
	"context"

	"go.uber.org/zap"

	"github.com/cropdoctor/cropdoctor/internal/store"
)

// Provider searches an external photo service for a representative
// crop image. An empty URL with nil error means the provider had no
// result or is not configured.
type Provider interface {
	Name() string
	Search(ctx context.Context, cropName string) (string, error)
}

// Resolver chains the cache and providers into one lookup.
type Resolver struct {
	cache     *store.ImageCache
	providers []Provider
	logger    *zap.Logger
}

// New creates a resolver that consults providers in the given order
// after a cache miss.
func New(cache *store.ImageCache, logger *zap.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		cache:     cache,
		providers: providers,
		logger:    logger,
	}
}

// Resolve returns an image URL for the crop, or "" when neither the
// cache nor any provider can serve one. Provider failures are logged
// and fall through to the next option; they never propagate.
func (r *Resolver) Resolve(ctx context.Context, cropName string) string {
	if url, ok := r.cache.Get(cropName); ok {
		return url
	}

	for _, p := range r.providers {
		url, err := p.Search(ctx, cropName)
		if err != nil {
			r.logger.Warn("image provider failed",
				zap.String("provider", p.Name()),
				zap.String("crop", cropName),
				zap.Error(err))
			continue
		}
		if url == "" {
			continue
		}

		if err := r.cache.Put(cropName, url); err != nil {
			r.logger.Warn("failed to cache image url",
				zap.String("crop", cropName),
				zap.Error(err))
		}
		return url
	}

	return ""
}
