package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// seatCacheTTL pendek saja: cache ini cuma hint UI, arbiter sebenarnya
// tetap unique constraint di database.
const seatCacheTTL = 30 * time.Second

var ErrCacheMiss = errors.New("seat cache miss")

// SeatCache menyimpan potret kursi terisi per screening di redis.
// Client nil berarti cache dimatikan; semua method jadi no-op.
type SeatCache struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRedisClient membuat koneksi redis dari config. Return nil kalau addr
// kosong atau server tidak bisa dihubungi; caller harus degrade gracefully.
func NewRedisClient(cfg utils.RedisConfig, log *zap.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, seat cache disabled", zap.Error(err))
		return nil
	}

	return client
}

func NewSeatCache(client *redis.Client, log *zap.Logger) *SeatCache {
	return &SeatCache{
		client: client,
		log:    log.With(zap.String("cache", "seat")),
	}
}

// GetTakenSeats baca potret kursi terisi dari cache.
func (c *SeatCache) GetTakenSeats(ctx context.Context, screeningID string) ([]string, error) {
	if c == nil || c.client == nil {
		return nil, ErrCacheMiss
	}

	key := c.takenKey(screeningID)
	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get taken seats from cache: %w", err)
	}
	if len(members) == 0 {
		// Set kosong tidak bisa dibedakan dari key absen, anggap miss.
		return nil, ErrCacheMiss
	}

	return members, nil
}

// SetTakenSeats simpan potret kursi terisi dengan TTL pendek.
func (c *SeatCache) SetTakenSeats(ctx context.Context, screeningID string, seatIDs []string) {
	if c == nil || c.client == nil || len(seatIDs) == 0 {
		return
	}

	key := c.takenKey(screeningID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	members := make([]any, len(seatIDs))
	for i, id := range seatIDs {
		members[i] = id
	}
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, seatCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("Failed to fill seat cache",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
	}
}

// Invalidate buang potret screening; dipanggil setelah reserve/cancel commit.
func (c *SeatCache) Invalidate(ctx context.Context, screeningID string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, c.takenKey(screeningID)).Err(); err != nil {
		c.log.Warn("Failed to invalidate seat cache",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
	}
}

func (c *SeatCache) takenKey(screeningID string) string {
	return fmt.Sprintf("seats:taken:%s", screeningID)
}
