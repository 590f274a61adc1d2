package btw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/pkg/utils"
)

const (
	// tokenExpiryBuffer is the margin before actual expiry at which the cached token lapses.
	tokenExpiryBuffer = 5 * time.Minute
	defaultTokenTTL   = 30 * time.Minute
	refreshTimeout    = 15 * time.Second
)

// TokenCache stores the shared access token. Implemented by store.HybridStore.
type TokenCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
}

// CredentialsProvider supplies the consumer key pair used to mint tokens.
type CredentialsProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// CredentialsInvalidator is implemented by providers that cache the key pair. Invalidate
// makes the next Credentials call re-read it, so a rotated pair is picked up.
type CredentialsInvalidator interface {
	Invalidate()
}

// StaticCredentials serves a fixed key pair, e.g. from the environment.
type StaticCredentials Credentials

func (s StaticCredentials) Credentials(context.Context) (Credentials, error) {
	if s.ConsumerKey == "" || s.ConsumerSecret == "" {
		return Credentials{}, fmt.Errorf("btw consumer key and secret are required")
	}
	return Credentials(s), nil
}

// ParseCredentials reads a secret map into Credentials.
func ParseCredentials(m map[string]string) (Credentials, error) {
	c := Credentials{ConsumerKey: m["consumer_key"], ConsumerSecret: m["consumer_secret"]}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return Credentials{}, fmt.Errorf("consumer_key and consumer_secret are required")
	}
	return c, nil
}

// TokenManager hands out the client-credentials access token shared by every request and
// every replica. At most one refresh runs at a time per process; concurrent callers wait
// for it and reuse its result.
type TokenManager struct {
	logger   *zap.Logger
	client   *http.Client
	tokenURL string
	creds    CredentialsProvider
	cache    TokenCache
	cacheKey string
	group    singleflight.Group
}

// NewTokenManager creates a new TokenManager.
func NewTokenManager(logger *zap.Logger, tokenURL string, creds CredentialsProvider, cache TokenCache, cacheKey string) *TokenManager {
	return &TokenManager{
		logger:   logger,
		client:   &http.Client{Timeout: 10 * time.Second},
		tokenURL: tokenURL,
		creds:    creds,
		cache:    cache,
		cacheKey: cacheKey,
	}
}

// Token returns the cached token, refreshing it when missing.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	token, err := m.cache.GetString(ctx, m.cacheKey)
	if err != nil {
		m.logger.Warn("btw.auth.cache_read_failed", zap.Error(err))
	}
	if token != "" {
		return token, nil
	}
	return m.Refresh(ctx, "")
}

// Refresh replaces stale, the token the vendor just rejected. If another caller already
// swapped it out, the newer cached token is returned without a second fetch.
func (m *TokenManager) Refresh(ctx context.Context, stale string) (string, error) {
	if current, err := m.cache.GetString(ctx, m.cacheKey); err == nil && current != "" && current != stale {
		return current, nil
	}

	ch := m.group.DoChan(m.cacheKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return m.fetchAndStore(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *TokenManager) fetchAndStore(ctx context.Context) (string, error) {
	token, err := m.fetchToken(ctx)
	if inv, ok := m.creds.(CredentialsInvalidator); ok && credentialsRejected(err) {
		m.logger.Warn("btw.auth.credentials_rejected", zap.Error(err))
		inv.Invalidate()
		token, err = m.fetchToken(ctx)
	}
	if err != nil {
		metrics.IncTokenRefresh("error")
		m.logger.Error("btw.auth.token_refresh_failed", zap.Error(err))
		return "", fmt.Errorf("btw auth: %w", err)
	}

	ttl := tokenTTL(token.ExpiresIn)
	if err := m.cache.SetString(ctx, m.cacheKey, token.AccessToken, ttl); err != nil {
		m.logger.Warn("btw.auth.cache_write_failed", zap.Error(err))
	}

	metrics.IncTokenRefresh("ok")
	m.logger.Info("btw.auth.token_refreshed",
		zap.String("token", utils.MaskSecret(token.AccessToken)),
		zap.Duration("ttl", ttl))
	return token.AccessToken, nil
}

func credentialsRejected(err error) bool {
	var ve *VendorError
	return errors.As(err, &ve) && ve.Unauthorized()
}

// fetchToken calls GET {tokenURL}?grant_type=client_credentials with basic auth.
func (m *TokenManager) fetchToken(ctx context.Context) (*TokenResponse, error) {
	creds, err := m.creds.Credentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	u, err := url.Parse(m.tokenURL)
	if err != nil {
		return nil, fmt.Errorf("invalid token url: %w", err)
	}
	q := u.Query()
	q.Set("grant_type", "client_credentials")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(creds.ConsumerKey, creds.ConsumerSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, parseVendorError(resp.StatusCode, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned empty accessToken")
	}
	return &tokenResp, nil
}

func tokenTTL(expiresIn json.Number) time.Duration {
	secs, err := expiresIn.Int64()
	if err != nil || secs <= 0 {
		return defaultTokenTTL
	}
	ttl := time.Duration(secs) * time.Second
	if ttl > 2*tokenExpiryBuffer {
		return ttl - tokenExpiryBuffer
	}
	return ttl / 2
}
