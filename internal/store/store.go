package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Checker-Finance/connectivity-adapters/pkg/model"
)

// ZTNAProductCode identifies the per-seat remote access rate row.
const ZTNAProductCode = "CATO-SN-SDP"

const defaultRateCacheTTL = 10 * time.Minute

// rowQuerier is satisfied by *pgxpool.Pool.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HybridStore is the Redis-first, Postgres-backed persistence behind the adapter: the shared
// vendor token lives in Redis, security rate tiers in Postgres with a Redis read-through cache.
type HybridStore struct {
	redis        *redis.Client
	PG           *pgxpool.Pool
	rates        rowQuerier
	rateCacheTTL time.Duration
	logger       *zap.Logger
}

type PGPoolConfig struct {
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// RedisConfig selects the Redis instance.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// NewHybrid connects Redis and, when pgURL is set, a Postgres pool.
func NewHybrid(rc RedisConfig, pgURL string, pgPoolConfig PGPoolConfig, rateCacheTTL time.Duration, logger *zap.Logger) (*HybridStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		DB:       rc.DB,
		Password: rc.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	s := &HybridStore{redis: rdb, rateCacheTTL: rateCacheTTL, logger: logger}
	if pgURL == "" {
		return s, nil
	}

	cfg, err := pgxpool.ParseConfig(pgURL)
	if err != nil {
		return nil, fmt.Errorf("invalid pg config: %w", err)
	}
	if pgPoolConfig.MaxConns > 0 {
		cfg.MaxConns = pgPoolConfig.MaxConns
	}
	if pgPoolConfig.MinConns > 0 {
		cfg.MinConns = pgPoolConfig.MinConns
	}
	if pgPoolConfig.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = pgPoolConfig.MaxConnLifetime
	}
	if pgPoolConfig.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = pgPoolConfig.MaxConnIdleTime
	}
	if pgPoolConfig.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = pgPoolConfig.HealthCheckPeriod
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	s.PG = pool
	s.rates = pool
	return s, nil
}

// GetString returns "" with a nil error when the key does not exist.
func (s *HybridStore) GetString(ctx context.Context, key string) (string, error) {
	val, err := s.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *HybridStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.redis.Set(ctx, key, value, ttl).Err()
}

func (s *HybridStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, ttl).Err()
}

func (s *HybridStore) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

const selectRate = `
	SELECT id, product_category, product_sub_category, region, product_name,
	       max_bandwidth_in_mbps, product_code, product_description, qty_units,
	       list_price, revenue_type, threat_prevention, casb, dlp, saas_security_api, rbi
	FROM pricing.security_pricing
`

// FindRateTier returns the remote access rate row when remoteAccess is set, otherwise the
// smallest bandwidth tier whose ceiling covers maxBandwidthMbps. A nil rate with a nil
// error means no row matched.
func (s *HybridStore) FindRateTier(ctx context.Context, maxBandwidthMbps float64, remoteAccess bool) (*model.SecurityRate, error) {
	key := rateCacheKey(maxBandwidthMbps, remoteAccess)

	var cached model.SecurityRate
	if s.redis != nil {
		err := s.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("store.rate_cache_read_failed", zap.String("key", key), zap.Error(err))
		}
	}

	if s.rates == nil {
		return nil, fmt.Errorf("postgres unavailable")
	}

	var row pgx.Row
	if remoteAccess {
		row = s.rates.QueryRow(ctx, selectRate+`
	WHERE product_code = $1
	ORDER BY max_bandwidth_in_mbps ASC
	LIMIT 1;`, ZTNAProductCode)
	} else {
		row = s.rates.QueryRow(ctx, selectRate+`
	WHERE max_bandwidth_in_mbps >= $1 AND product_code <> $2
	ORDER BY max_bandwidth_in_mbps ASC
	LIMIT 1;`, maxBandwidthMbps, ZTNAProductCode)
	}

	rate, err := scanRate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindRateTier scan failed: %w", err)
	}

	if s.redis != nil {
		ttl := s.rateCacheTTL
		if ttl <= 0 {
			ttl = defaultRateCacheTTL
		}
		if err := s.SetJSON(ctx, key, rate, ttl); err != nil {
			s.logger.Warn("store.rate_cache_write_failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rate, nil
}

func rateCacheKey(mbps float64, remoteAccess bool) string {
	if remoteAccess {
		return "security_rate:" + ZTNAProductCode
	}
	return "security_rate:bw:" + strconv.FormatFloat(mbps, 'f', -1, 64)
}

func scanRate(row pgx.Row) (*model.SecurityRate, error) {
	var (
		r                                   model.SecurityRate
		threat, casb, dlp, saasAPI, rbiRate decimal.NullDecimal
	)
	if err := row.Scan(
		&r.ID, &r.ProductCategory, &r.ProductSubCategory, &r.Region, &r.ProductName,
		&r.MaxBandwidthMbps, &r.ProductCode, &r.ProductDescription, &r.QtyUnits,
		&r.ListPrice, &r.RevenueType, &threat, &casb, &dlp, &saasAPI, &rbiRate,
	); err != nil {
		return nil, err
	}
	r.ThreatPrevention = threat.Decimal
	r.CASB = casb.Decimal
	r.DLP = dlp.Decimal
	r.SaaSSecurityAPI = saasAPI.Decimal
	r.RBI = rbiRate.Decimal
	return &r, nil
}

func (s *HybridStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	if s.PG != nil {
		if err := s.PG.Ping(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	return nil
}

func (s *HybridStore) Close() error {
	if s.PG != nil {
		s.PG.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}
