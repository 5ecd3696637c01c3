package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
)

// profileColumns — единый список колонок таблицы profiles для SELECT/RETURNING.
const profileColumns = `user_id, display_name, main_email, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile

	if err := row.Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.MainEmail,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &profile, nil
}

// FindProfile ищет профиль по ключу Profile(user_id).
// Отсутствие записи — (nil, false, nil); ключ другого вида — тоже «нет записи».
func (s *Storage) FindProfile(ctx context.Context, key keys.Key) (*models.Profile, bool, error) {
	const op = "storage/postgres/profiles/FindProfile"

	userID, ok := storage.ProfileKeyID(key)
	if !ok {
		return nil, false, nil
	}

	profile, err := s.ProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFoundProfile) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return profile, true, nil
}

// ProfileByID возвращает профиль по user_id.
// Ошибки: storage.ErrNotFoundProfile, либо ошибка выполнения запроса.
func (s *Storage) ProfileByID(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage/postgres/profiles/ProfileByID"

	q := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	result, err := scanProfile(s.db.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundProfile)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SaveProfile вставляет профиль или перезаписывает display_name/main_email существующего.
// created_at сохраняется, updated_at = now().
func (s *Storage) SaveProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	const op = "storage/postgres/profiles/SaveProfile"

	q := `
	INSERT INTO profiles (user_id, display_name, main_email)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE
	SET display_name = EXCLUDED.display_name,
	    main_email = EXCLUDED.main_email,
	    updated_at = now()
	RETURNING ` + profileColumns

	result, err := scanProfile(s.db.QueryRow(ctx, q, profile.UserID, profile.DisplayName, profile.MainEmail))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
