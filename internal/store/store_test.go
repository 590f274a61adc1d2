package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*HybridStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &HybridStore{redis: rdb, logger: zap.NewNop()}, mr
}

// ─── Fake Postgres rows ───────────────────────────────────────────────────────

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *int:
			*p = r.values[i].(int)
		case *string:
			*p = r.values[i].(string)
		case *decimal.Decimal:
			*p = r.values[i].(decimal.Decimal)
		case *decimal.NullDecimal:
			if r.values[i] == nil {
				*p = decimal.NullDecimal{}
			} else {
				*p = decimal.NullDecimal{Decimal: r.values[i].(decimal.Decimal), Valid: true}
			}
		}
	}
	return nil
}

type fakeQuerier struct {
	row   fakeRow
	calls int
	sql   []string
	args  [][]any
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls++
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return q.row
}

func rateRow(code string, maxMbps int, list string) fakeRow {
	return fakeRow{values: []any{
		int64(7), "Security", "SASE", "UK", "Cato SSE " + code, maxMbps, code, "desc", "site",
		decimal.RequireFromString(list), "MRC",
		decimal.RequireFromString("20"), decimal.RequireFromString("15"), nil, nil, decimal.RequireFromString("5"),
	}}
}

// ─── String / JSON helpers ────────────────────────────────────────────────────

func TestStringRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	got, err := store.GetString(ctx, "btw:access_token")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.SetString(ctx, "btw:access_token", "tok", time.Minute))
	got, err = store.GetString(ctx, "btw:access_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Equal(t, time.Minute, mr.TTL("btw:access_token"))

	mr.FastForward(time.Minute)
	got, err = store.GetString(ctx, "btw:access_token")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetAndGetJSON(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()

	val := map[string]string{"consumer_key": "abc123"}
	require.NoError(t, store.SetJSON(ctx, "k", val, time.Minute))

	var out map[string]string
	require.NoError(t, store.GetJSON(ctx, "k", &out))
	assert.Equal(t, val, out)

	require.NoError(t, mr.Set("bad", "not-json"))
	assert.Error(t, store.GetJSON(ctx, "bad", &out))
}

// ─── FindRateTier ─────────────────────────────────────────────────────────────

func TestFindRateTier_BandwidthQueryAndCache(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)
	defer mr.Close()
	q := &fakeQuerier{row: rateRow("CATO-SSE-500", 500, "320.50")}
	store.rates = q

	rate, err := store.FindRateTier(ctx, 400, false)
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, 500, rate.MaxBandwidthMbps)
	assert.True(t, rate.ListPrice.Equal(decimal.RequireFromString("320.50")))
	assert.True(t, rate.DLP.IsZero(), "NULL add-on rates scan as zero")
	assert.Contains(t, q.sql[0], "max_bandwidth_in_mbps >= $1")
	assert.Equal(t, []any{400.0, ZTNAProductCode}, q.args[0])

	again, err := store.FindRateTier(ctx, 400, false)
	require.NoError(t, err)
	assert.Equal(t, 1, q.calls, "second lookup should come from redis")
	assert.True(t, again.ListPrice.Equal(rate.ListPrice))
	assert.True(t, mr.Exists("security_rate:bw:400"))
}

func TestFindRateTier_RemoteAccessUsesProductCode(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()
	q := &fakeQuerier{row: rateRow(ZTNAProductCode, 0, "9")}
	store.rates = q

	rate, err := store.FindRateTier(context.Background(), 10000, true)
	require.NoError(t, err)
	assert.Equal(t, ZTNAProductCode, rate.ProductCode)
	assert.Contains(t, q.sql[0], "WHERE product_code = $1")
	assert.Equal(t, []any{ZTNAProductCode}, q.args[0])
}

func TestFindRateTier_NoRows(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()
	store.rates = &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}

	rate, err := store.FindRateTier(context.Background(), 20000, false)
	require.NoError(t, err)
	assert.Nil(t, rate)
}

func TestFindRateTier_NoPostgres(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()

	_, err := store.FindRateTier(context.Background(), 100, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres unavailable")
}

// ─── HealthCheck / Close ──────────────────────────────────────────────────────

func TestHealthCheck_Success(t *testing.T) {
	store, mr := newTestStore(t)
	defer mr.Close()
	require.NoError(t, store.HealthCheck(context.Background()))
}

func TestHealthCheck_RedisNil(t *testing.T) {
	store := &HybridStore{}
	err := store.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis not initialized")
}

func TestHealthCheck_RedisDown(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	err := store.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestClose_NilComponents(t *testing.T) {
	assert.NoError(t, (&HybridStore{}).Close())
}
