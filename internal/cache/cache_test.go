package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Тесты кэша профилей:
// — unit: деградация до хранилища при недоступном Redis;
// — интеграционные: Redis в контейнере (redis:7-alpine), GO_TEST_INTEGRATION=1.

// countingFinder — ProfileFinder в памяти со счётчиком обращений.
type countingFinder struct {
	profiles map[string]*models.Profile
	err      error
	calls    int
}

func (f *countingFinder) FindProfile(_ context.Context, key keys.Key) (*models.Profile, bool, error) {
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}

	if key.Kind != models.KindProfile {
		return nil, false, nil
	}

	p, ok := f.profiles[key.Name]
	return p, ok, nil
}

func alice() *models.Profile {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 123, time.UTC)
	return &models.Profile{UserID: "u1", DisplayName: "Alice", MainEmail: "a@example.com", CreatedAt: ts, UpdatedAt: ts}
}

// deadRedis — клиент на заведомо закрытый порт: все команды падают быстро.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

// Redis недоступен -> ответ из хранилища, без ошибки.
func TestFindProfile_RedisDown_FallsBackToStore(t *testing.T) {
	next := &countingFinder{profiles: map[string]*models.Profile{"u1": alice()}}
	c := New(deadRedis(), next, "", time.Minute)
	defer c.Close()

	p, found, err := c.FindProfile(context.Background(), models.ProfileKey("u1"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Alice", p.DisplayName)
	require.Equal(t, 1, next.calls)

	require.Error(t, c.Invalidate(context.Background(), "u1"))
}

// Ошибка хранилища пробрасывается.
func TestFindProfile_StoreError(t *testing.T) {
	boom := errors.New("store down")
	c := New(deadRedis(), &countingFinder{err: boom}, "", time.Minute)
	defer c.Close()

	_, found, err := c.FindProfile(context.Background(), models.ProfileKey("u1"))
	require.ErrorIs(t, err, boom)
	require.False(t, found)
}

// Ключ не профиля уходит в next как есть.
func TestFindProfile_NonProfileKey(t *testing.T) {
	next := &countingFinder{}
	c := New(deadRedis(), next, "", time.Minute)
	defer c.Close()

	_, found, err := c.FindProfile(context.Background(), keys.New(nil, models.KindSection, 1))
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 1, next.calls)
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	rdb, err := Connect(ctx, "redis://"+host+":"+port.Port()+"/0")
	require.NoError(t, err)
	return rdb
}

// Второе чтение — из кэша; Invalidate возвращает чтение в хранилище.
func TestIntegration_ReadThroughAndInvalidate(t *testing.T) {
	rdb := startRedis(t)
	next := &countingFinder{profiles: map[string]*models.Profile{"u1": alice()}}
	c := New(rdb, next, "test:", time.Minute)
	defer c.Close()
	ctx := context.Background()

	first, found, err := c.FindProfile(ctx, models.ProfileKey("u1"))
	require.NoError(t, err)
	require.True(t, found)

	second, found, err := c.FindProfile(ctx, models.ProfileKey("u1"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, next.calls)
	require.Equal(t, first.DisplayName, second.DisplayName)
	require.Equal(t, first.MainEmail, second.MainEmail)
	require.True(t, first.CreatedAt.Equal(second.CreatedAt))

	ttl, err := rdb.TTL(ctx, "test:u1").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Invalidate(ctx, "u1"))
	_, _, err = c.FindProfile(ctx, models.ProfileKey("u1"))
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

// Отсутствующий профиль не кэшируется.
func TestIntegration_MissNotCached(t *testing.T) {
	rdb := startRedis(t)
	next := &countingFinder{profiles: map[string]*models.Profile{}}
	c := New(rdb, next, "test:", time.Minute)
	defer c.Close()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, found, err := c.FindProfile(ctx, models.ProfileKey("ghost"))
		require.NoError(t, err)
		require.False(t, found)
	}
	require.Equal(t, 2, next.calls)

	n, err := rdb.Exists(ctx, "test:ghost").Result()
	require.NoError(t, err)
	require.Zero(t, n)
}
