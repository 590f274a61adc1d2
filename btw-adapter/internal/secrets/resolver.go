package secrets

import (
	"context"

	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/btw"
	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/pkg/config"
	intsecrets "github.com/Checker-Finance/connectivity-adapters/internal/secrets"
	pkgsecrets "github.com/Checker-Finance/connectivity-adapters/pkg/secrets"
)

// CredentialResolver loads the BT Wholesale consumer key pair from the secrets provider.
// It is a thin wrapper over the generic intsecrets.AWSResolver[btw.Credentials].
//
// Secret naming convention: {env}/{account}/btw
// Secret JSON format:       {"consumer_key": "...", "consumer_secret": "..."}
type CredentialResolver struct {
	inner   *intsecrets.AWSResolver[btw.Credentials]
	account string
}

var _ btw.CredentialsInvalidator = (*CredentialResolver)(nil)

// NewCredentialResolver constructs a resolver for the configured account.
func NewCredentialResolver(
	logger *zap.Logger,
	cfg config.Config,
	provider pkgsecrets.Provider,
	cache *pkgsecrets.Cache[btw.Credentials],
) *CredentialResolver {
	inner := intsecrets.NewAWSResolver(logger, cfg.Env, cfg.Venue, provider, cache)
	return &CredentialResolver{inner: inner, account: cfg.CredentialsName}
}

// Credentials implements btw.CredentialsProvider.
func (r *CredentialResolver) Credentials(ctx context.Context) (btw.Credentials, error) {
	return r.inner.Resolve(ctx, r.account, btw.ParseCredentials)
}

// Invalidate forces the next call to re-read the secret, e.g. after a key rotation.
func (r *CredentialResolver) Invalidate() {
	r.inner.Invalidate(r.account)
}

// SecretName is the secret the resolver reads.
func (r *CredentialResolver) SecretName() string {
	return r.inner.SecretName(r.account)
}
