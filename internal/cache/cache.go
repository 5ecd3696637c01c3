// cache — read-through кэш профилей организаторов в Redis.
//
// Profiles оборачивает models.ProfileFinder: попадание отдаёт профиль из Redis,
// промах идёт в хранилище и кладёт найденный профиль с TTL.
// Отсутствующие профили не кэшируются. Ошибки Redis не ломают чтение:
// запрос уходит в хранилище, ошибка пишется в лог.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
	"github.com/pribylovaa/hobby-sections/pkg/log"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "sections:profile:"

// Profiles — кэширующий декоратор поверх ProfileFinder.
type Profiles struct {
	rdb    *redis.Client
	next   models.ProfileFinder
	prefix string
	ttl    time.Duration
}

var _ models.ProfileFinder = (*Profiles)(nil)

// Connect создаёт клиент Redis из URL (например, redis://:pass@host:6379/0) и проверяет соединение.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	const op = "cache/Connect"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rdb, nil
}

// New оборачивает next кэшем в rdb. Пустой prefix заменяется на "sections:profile:".
func New(rdb *redis.Client, next models.ProfileFinder, prefix string, ttl time.Duration) *Profiles {
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &Profiles{rdb: rdb, next: next, prefix: prefix, ttl: ttl}
}

func (c *Profiles) key(userID string) string { return c.prefix + userID }

// FindProfile реализует models.ProfileFinder.
// Ключи не профилей пропускаются в next без кэширования.
func (c *Profiles) FindProfile(ctx context.Context, key keys.Key) (*models.Profile, bool, error) {
	userID, ok := storage.ProfileKeyID(key)
	if !ok {
		return c.next.FindProfile(ctx, key)
	}

	lg := log.From(ctx).With("op", "cache/FindProfile", "user_id", userID)

	profile, hit, err := c.get(ctx, userID)
	if err != nil {
		lg.Warn("profile_cache_get_failed", slog.String("err", err.Error()))
	}
	if hit {
		return profile, true, nil
	}

	profile, found, err := c.next.FindProfile(ctx, key)
	if err != nil || !found {
		return profile, found, err
	}

	if err := c.set(ctx, profile); err != nil {
		lg.Warn("profile_cache_set_failed", slog.String("err", err.Error()))
	}

	return profile, true, nil
}

// Invalidate удаляет профиль userID из кэша.
func (c *Profiles) Invalidate(ctx context.Context, userID string) error {
	const op = "cache/Invalidate"

	if err := c.rdb.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (c *Profiles) Close() error { return c.rdb.Close() }

// Профиль хранится как Redis Hash: name, email, created, updated (unix nano).
func (c *Profiles) get(ctx context.Context, userID string) (*models.Profile, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	created, err := strconv.ParseInt(m["created"], 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("bad created: %w", err)
	}

	updated, err := strconv.ParseInt(m["updated"], 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("bad updated: %w", err)
	}

	return &models.Profile{
		UserID:      userID,
		DisplayName: m["name"],
		MainEmail:   m["email"],
		CreatedAt:   time.Unix(0, created).UTC(),
		UpdatedAt:   time.Unix(0, updated).UTC(),
	}, true, nil
}

func (c *Profiles) set(ctx context.Context, p *models.Profile) error {
	kv := map[string]string{
		"name":    p.DisplayName,
		"email":   p.MainEmail,
		"created": strconv.FormatInt(p.CreatedAt.UnixNano(), 10),
		"updated": strconv.FormatInt(p.UpdatedAt.UnixNano(), 10),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(p.UserID), kv)
	pipe.Expire(ctx, c.key(p.UserID), c.ttl)

	_, err := pipe.Exec(ctx)
	return err
}
