package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
	"github.com/pribylovaa/hobby-sections/pkg/log"
)

// SectionQuery — параметры выборки секций.
// Пустые строки не фильтруют; Limit <= 0 -> cfg.Limits.Default, сверху — cfg.Limits.Max.
type SectionQuery struct {
	OwnerID  string
	City     string
	Category string
	Limit    int
	Offset   int
}

// CreateSection создаёт секцию владельца ownerID из формы.
//
// Валидация:
//   - ownerID не пустой (после TrimSpace);
//   - форма проходит SectionForm.Validate (непустое имя).
//
// Поведение:
//   - id выделяется хранилищем в пространстве владельца;
//   - конфликт ключа -> ErrAlreadyExists, прочие ошибки стораджа -> ErrInternal.
func (s *Service) CreateSection(ctx context.Context, ownerID string, form models.SectionForm) (*models.Section, error) {
	const op = "service/sections/CreateSection"

	lg := log.From(ctx).With("op", op, "owner_id", ownerID)

	if strings.TrimSpace(ownerID) == "" {
		lg.Warn("invalid argument: empty owner_id")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := form.Validate(); err != nil {
		lg.Warn("invalid argument: form", "err", err)

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	id, err := s.sectionsStorage.NextSectionID(ctx, ownerID)
	if err != nil {
		lg.Error("storage error on NextSectionID", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	section, err := models.NewSection(id, ownerID, form)
	if err != nil {
		lg.Warn("invalid argument: section", "err", err)

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	result, err := s.sectionsStorage.CreateSection(ctx, section)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			lg.Warn("section already exists", "section_id", id)

			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		default:
			lg.Error("storage error on CreateSection", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("section created", "section_id", result.ID())

	return result, nil
}

// decodeSectionKey разбирает websafe-ключ и проверяет, что это ключ секции.
func decodeSectionKey(websafeKey string) (keys.Key, error) {
	key, err := keys.Decode(websafeKey)
	if err != nil {
		return keys.Key{}, err
	}

	if _, _, ok := storage.SectionKeyParts(key); !ok {
		return keys.Key{}, fmt.Errorf("%w: not a section key: %s", keys.ErrInvalidKey, key)
	}

	return key, nil
}

// SectionByKey возвращает секцию по websafe-ключу.
//
// Поведение:
//   - битый ключ или ключ другого вида -> ErrInvalidArgument;
//   - отсутствие записи -> ErrNotFound; прочие ошибки -> ErrInternal.
func (s *Service) SectionByKey(ctx context.Context, websafeKey string) (*models.Section, error) {
	const op = "service/sections/SectionByKey"

	lg := log.From(ctx).With("op", op)

	key, err := decodeSectionKey(websafeKey)
	if err != nil {
		lg.Warn("invalid argument: websafe key", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.sectionsStorage.SectionByKey(ctx, key)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundSection):
			lg.Warn("section not found", "key", key.String())

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on SectionByKey", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// UpdateSection перезаписывает изменяемые поля секции из формы.
// Идентичность (id, владелец, ключ) не меняется; незаданные поля получают значения по умолчанию.
func (s *Service) UpdateSection(ctx context.Context, websafeKey string, form models.SectionForm) (*models.Section, error) {
	const op = "service/sections/UpdateSection"

	lg := log.From(ctx).With("op", op)

	if err := form.Validate(); err != nil {
		lg.Warn("invalid argument: form", "err", err)

		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	section, err := s.SectionByKey(ctx, websafeKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	section.Update(form)

	result, err := s.sectionsStorage.UpdateSection(ctx, section)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundSection):
			lg.Warn("section disappeared before update", "key", section.Key().String())

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on UpdateSection", "err", err)

			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// DeleteSection удаляет секцию по websafe-ключу.
func (s *Service) DeleteSection(ctx context.Context, websafeKey string) error {
	const op = "service/sections/DeleteSection"

	lg := log.From(ctx).With("op", op)

	key, err := decodeSectionKey(websafeKey)
	if err != nil {
		lg.Warn("invalid argument: websafe key", "err", err)

		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.sectionsStorage.DeleteSection(ctx, key); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFoundSection):
			lg.Warn("section not found", "key", key.String())

			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteSection", "err", err)

			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("section deleted", "key", key.String())

	return nil
}

// limitOrDefault приводит запрошенный размер страницы к [1, cfg.Limits.Max].
func (s *Service) limitOrDefault(limit int) int {
	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}

	if limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	return limit
}

// ListSections возвращает страницу секций по фильтру в порядке (owner_id, id).
// Отрицательный offset -> ErrInvalidArgument.
func (s *Service) ListSections(ctx context.Context, query SectionQuery) ([]*models.Section, error) {
	const op = "service/sections/ListSections"

	lg := log.From(ctx).With("op", op, "owner_id", query.OwnerID)

	if query.Offset < 0 {
		lg.Warn("invalid argument: negative offset", "offset", query.Offset)

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.sectionsStorage.ListSections(ctx, storage.SectionFilter{
		OwnerID:  strings.TrimSpace(query.OwnerID),
		City:     query.City,
		Category: query.Category,
		Limit:    s.limitOrDefault(query.Limit),
		Offset:   query.Offset,
	})
	if err != nil {
		lg.Error("storage error on ListSections", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// OrganizerDisplayName возвращает отображаемое имя организатора секции:
// DisplayName профиля владельца, а при его отсутствии — сырой ownerID.
// Ошибка справочника профилей -> ErrInternal.
func (s *Service) OrganizerDisplayName(ctx context.Context, section *models.Section) (string, error) {
	const op = "service/sections/OrganizerDisplayName"

	name, err := section.OrganizerDisplayName(ctx, s.profiles())
	if err != nil {
		log.From(ctx).Error("profile lookup failed", "op", op, "owner_id", section.OwnerID(), "err", err)

		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return name, nil
}
