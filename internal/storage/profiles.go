package storage

import (
	"context"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
)

// Profiles — контракт справочника профилей.
type Profiles interface {
	// FindProfile ищет профиль по ключу. Отсутствие записи — found=false без ошибки.
	FindProfile(ctx context.Context, key keys.Key) (*models.Profile, bool, error)
	// ProfileByID возвращает профиль по user_id или ErrNotFoundProfile.
	ProfileByID(ctx context.Context, userID string) (*models.Profile, error)
	// SaveProfile создаёт или перезаписывает профиль (upsert по user_id).
	// Реализация выставляет created_at при вставке и обновляет updated_at.
	SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}
