package secrets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	pkgsecrets "github.com/Checker-Finance/connectivity-adapters/pkg/secrets"
)

// AWSResolver resolves per-account vendor configuration from a secrets provider,
// caching parsed results locally. It is generic over the resolved type T.
//
// Secret naming convention: {env}/{account}/{venue}
type AWSResolver[T any] struct {
	logger   *zap.Logger
	env      string
	venue    string
	provider pkgsecrets.Provider
	cache    *pkgsecrets.Cache[T]
}

// NewAWSResolver constructs a resolver for one venue.
func NewAWSResolver[T any](
	logger *zap.Logger,
	env string,
	venue string,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[T],
) *AWSResolver[T] {
	return &AWSResolver[T]{
		logger:   logger,
		env:      env,
		venue:    venue,
		provider: provider,
		cache:    cache,
	}
}

func (r *AWSResolver[T]) cacheKey(account string) string {
	return strings.ToLower(fmt.Sprintf("%s|%s", account, r.venue))
}

// SecretName builds the secret key for an account.
func (r *AWSResolver[T]) SecretName(account string) string {
	return strings.ToLower(fmt.Sprintf("%s/%s/%s", r.env, account, r.venue))
}

// Resolve fetches or returns cached config T for an account.
// parse extracts T from the raw secret map and should validate required fields.
func (r *AWSResolver[T]) Resolve(ctx context.Context, account string, parse func(map[string]string) (T, error)) (T, error) {
	var zero T
	key := r.cacheKey(account)

	if cfg, ok := r.cache.Get(key); ok {
		return cfg, nil
	}

	name := r.SecretName(account)
	raw, err := r.provider.GetSecret(ctx, name)
	if err != nil {
		r.logger.Warn("secrets.fetch_failed",
			zap.String("key", name),
			zap.Error(err))
		return zero, fmt.Errorf("resolve %s config for %q: %w", r.venue, account, err)
	}

	cfg, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("parse secret %q: %w", name, err)
	}

	r.cache.Put(key, cfg)
	r.logger.Info("secrets.config_resolved",
		zap.String("account", account),
		zap.String("venue", r.venue))
	return cfg, nil
}

// Invalidate drops the cached config so the next Resolve reads the provider again.
func (r *AWSResolver[T]) Invalidate(account string) {
	r.cache.Bust(r.cacheKey(account))
}
