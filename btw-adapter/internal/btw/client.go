package btw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/btw-adapter/internal/metrics"
	"github.com/Checker-Finance/connectivity-adapters/internal/httpclient"
	"github.com/Checker-Finance/connectivity-adapters/internal/rate"
)

const (
	quotePath      = "/tmf-api/quoteManagement/v4/quote"
	trackingHeader = "APIGW-Tracking-Header"
)

// QuoteRateLimitID is the rate.Manager key shared by every quote submission.
const QuoteRateLimitID = "btw_quote"

// Tokens is the subset of TokenManager the client depends on.
type Tokens interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context, stale string) (string, error)
}

// Client wraps HTTP communication with the BT Wholesale quote API.
// It handles bearer auth, rate limiting and retries through the shared executor.
type Client struct {
	logger      *zap.Logger
	baseURL     string
	tokens      Tokens
	exec        *httpclient.Executor
	authRetries int
}

// ClientConfig holds the HTTP tuning for the vendor client.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	RetryMax    int
	AuthRetries int
}

// NewClient constructs a new BT Wholesale client.
func NewClient(logger *zap.Logger, cfg ClientConfig, tokens Tokens, rateMgr *rate.Manager) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.AuthRetries < 0 {
		cfg.AuthRetries = 0
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	exec := httpclient.New(logger, rateMgr, httpClient, cfg.RetryMax, "btw", func(status int, body []byte) error {
		ve := parseVendorError(status, body)
		logger.Warn("btw.client_error",
			zap.Int("status", status),
			zap.String("code", ve.Code),
			zap.String("message", ve.Message))
		return ve
	}).WithObserver(metrics.RequestObserver("quote"))

	return &Client{
		logger:      logger,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		tokens:      tokens,
		exec:        exec,
		authRetries: cfg.AuthRetries,
	}
}

// CreateQuote submits one quote request. A 401 invalidates the token and the call is
// replayed, at most authRetries times.
func (c *Client) CreateQuote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.postQuote(ctx, token, req)
		if err == nil {
			return resp, nil
		}

		var ve *VendorError
		if !errors.As(err, &ve) || !ve.Unauthorized() || attempt >= c.authRetries {
			return nil, err
		}

		c.logger.Info("btw.auth.token_rejected",
			zap.String("external_id", req.ExternalID),
			zap.Int("attempt", attempt))
		token, err = c.tokens.Refresh(ctx, token)
		if err != nil {
			return nil, err
		}
	}
}

func (c *Client) postQuote(ctx context.Context, token string, body QuoteRequest) (*QuoteResponse, error) {
	req, err := httpclient.NewJSONRequest(ctx, http.MethodPost, c.baseURL+quotePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set(trackingHeader, uuid.NewString())

	var out QuoteResponse
	if err := c.exec.DoJSON(ctx, req, QuoteRateLimitID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
