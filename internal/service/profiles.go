package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
	"github.com/pribylovaa/hobby-sections/pkg/log"
	"github.com/pribylovaa/hobby-sections/pkg/redact"
)

// ProfileInput — данные профиля организатора.
type ProfileInput struct {
	UserID      string
	DisplayName string
	MainEmail   string
}

// ProfileByID возвращает профиль по идентификатору пользователя.
func (s *Service) ProfileByID(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "service/profiles/ProfileByID"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if strings.TrimSpace(userID) == "" {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.profilesStorage.ProfileByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundProfile):
			lg.Warn("profile not found")

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ProfileByID", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// SaveProfile создаёт профиль или обновляет существующий.
//
// Правила:
//   - userID обязателен;
//   - новый профиль требует непустой displayName;
//   - у существующего пустой displayName не затирает прежний (Profile.Update),
//     пустой mainEmail — тоже.
//
// После записи профиль вычищается из кэша, чтобы имя организатора не отставало.
func (s *Service) SaveProfile(ctx context.Context, input ProfileInput) (*models.Profile, error) {
	const op = "service/profiles/SaveProfile"

	input.UserID = strings.TrimSpace(input.UserID)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.MainEmail = strings.TrimSpace(input.MainEmail)

	lg := log.From(ctx).With("op", op, "user_id", input.UserID, "email", redact.Email(input.MainEmail))

	if input.UserID == "" {
		lg.Warn("invalid argument: empty user_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	profile, err := s.profilesStorage.ProfileByID(ctx, input.UserID)
	switch {
	case err == nil:
		profile.Update(input.DisplayName)
		if input.MainEmail != "" {
			profile.MainEmail = input.MainEmail
		}
	case errors.Is(err, storage.ErrNotFoundProfile):
		if input.DisplayName == "" {
			lg.Warn("invalid argument: empty display_name for new profile")

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		profile = &models.Profile{
			UserID:      input.UserID,
			DisplayName: input.DisplayName,
			MainEmail:   input.MainEmail,
		}
	default:
		lg.Error("storage error on ProfileByID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	result, err := s.profilesStorage.SaveProfile(ctx, profile)
	if err != nil {
		lg.Error("storage error on SaveProfile", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if s.profileCache != nil {
		if err := s.profileCache.Invalidate(ctx, input.UserID); err != nil {
			lg.Warn("profile cache invalidation failed", "err", err)
		}
	}

	return result, nil
}
