package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shopfront/shop-api/internal/core/domain"
)

// RequestDeduper abstracts the idempotency store (Redis).
type RequestDeduper interface {
	// Claim records key under scope and reports whether it was new.
	Claim(ctx context.Context, scope, key string) (bool, error)
	// Release forgets a claimed key so the request can be retried.
	Release(ctx context.Context, scope, key string) error
}

// claimOnce returns domain.ErrDuplicateRequest when key was already claimed.
// An empty key or a nil deduper skips the check; store errors are logged and
// the request proceeds.
func claimOnce(ctx context.Context, dedup RequestDeduper, log zerolog.Logger, scope, key string) error {
	if key == "" || dedup == nil {
		return nil
	}
	fresh, err := dedup.Claim(ctx, scope, key)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("idempotency check failed, processing anyway")
		return nil
	}
	if !fresh {
		log.Debug().Str("scope", scope).Str("idempotency_key", key).Msg("duplicate request skipped")
		return domain.ErrDuplicateRequest
	}
	return nil
}

// releaseClaim frees a key claimed by claimOnce after the guarded write failed.
func releaseClaim(ctx context.Context, dedup RequestDeduper, log zerolog.Logger, scope, key string) {
	if key == "" || dedup == nil {
		return
	}
	if err := dedup.Release(ctx, scope, key); err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("idempotency key release failed")
	}
}
