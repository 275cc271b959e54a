package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
)

const keyPrefix = "studio:slots"

// RedisSlotCache guarda grades por negócio/dia. A chave da grade carrega duas
// versões: a do negócio (muda com o calendário) e a do dia (muda a cada reserva
// ou mudança de status). Chaves antigas expiram sozinhas.
// Falhas do Redis viram miss e são só logadas.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisSlotCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisSlotCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "slot_cache").Logger(),
	}
}

func versionKey(businessID uint) string {
	return fmt.Sprintf("%s:%d:version", keyPrefix, businessID)
}

func dayVersionKey(businessID uint, date string) string {
	return fmt.Sprintf("%s:%d:%s:version", keyPrefix, businessID, date)
}

func gridKey(businessID uint, version, date string) string {
	return fmt.Sprintf("%s:%d:v%s:%s", keyPrefix, businessID, version, date)
}

// dayVersionTTL mantém o contador do dia vivo bem além das grades que ele protege.
func (c *RedisSlotCache) dayVersionTTL() time.Duration {
	if ttl := 10 * c.ttl; ttl > 24*time.Hour {
		return ttl
	}
	return 24 * time.Hour
}

func parseCounter(raw any) (int64, error) {
	if raw == nil {
		return 0, nil
	}
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected version value %T", raw)
	}
	return strconv.ParseInt(s, 10, 64)
}

// version combina a versão do negócio com a do dia.
func (c *RedisSlotCache) version(ctx context.Context, businessID uint, date string) (string, error) {
	vals, err := c.client.MGet(ctx, versionKey(businessID), dayVersionKey(businessID, date)).Result()
	if err != nil {
		return "", err
	}

	business, err := parseCounter(vals[0])
	if err != nil {
		return "", err
	}
	day, err := parseCounter(vals[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", business, day), nil
}

func (c *RedisSlotCache) Get(ctx context.Context, businessID uint, date string) (*domain.Grid, string, bool) {
	v, err := c.version(ctx, businessID, date)
	if err != nil {
		c.log.Warn().Err(err).Uint("business_id", businessID).Msg("slot cache version read failed")
		return nil, "", false
	}

	raw, err := c.client.Get(ctx, gridKey(businessID, v, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false
	}
	if err != nil {
		c.log.Warn().Err(err).Uint("business_id", businessID).Str("date", date).Msg("slot cache read failed")
		return nil, v, false
	}

	var grid domain.Grid
	if err := json.Unmarshal(raw, &grid); err != nil {
		c.log.Warn().Err(err).Str("date", date).Msg("slot cache decode failed")
		return nil, v, false
	}
	return &grid, v, true
}

// Set grava sob a versão lida no Get. Se o dia foi invalidado no meio, a chave
// escrita já é de uma versão morta e ninguém a lê.
func (c *RedisSlotCache) Set(ctx context.Context, businessID uint, date, version string, grid *domain.Grid) {
	if grid == nil || version == "" {
		return
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		c.log.Warn().Err(err).Msg("slot cache encode failed")
		return
	}

	if err := c.client.Set(ctx, gridKey(businessID, version, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Uint("business_id", businessID).Str("date", date).Msg("slot cache write failed")
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, businessID uint, date string) {
	key := dayVersionKey(businessID, date)

	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, c.dayVersionTTL())
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Uint("business_id", businessID).Str("date", date).Msg("slot cache day bump failed")
		// sem o contador do dia derruba o negócio inteiro
		c.InvalidateBusiness(ctx, businessID)
	}
}

func (c *RedisSlotCache) InvalidateBusiness(ctx context.Context, businessID uint) {
	if err := c.client.Incr(ctx, versionKey(businessID)).Err(); err != nil {
		c.log.Warn().Err(err).Uint("business_id", businessID).Msg("slot cache version bump failed")
	}
}

var _ domain.SlotCache = (*RedisSlotCache)(nil)
