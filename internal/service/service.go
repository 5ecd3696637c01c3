// service содержит бизнес-логику sections-service:
// - операции над секциями (создание, чтение по websafe-ключу, обновление, удаление, выборка);
// - имя организатора секции через справочник профилей (с опциональным кэшем);
// - запись/чтение профилей организаторов.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/hobby-sections/internal/config"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные (валидация, битый ключ и т.п.).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — конфликт уникальности/дубликат.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInternal — внутренняя ошибка сервиса.
	ErrInternal = errors.New("internal")
)

// ProfileCache — кэш профилей поверх хранилища (см. internal/cache).
type ProfileCache interface {
	models.ProfileFinder
	// Invalidate удаляет закэшированный профиль пользователя.
	Invalidate(ctx context.Context, userID string) error
}

// Service — описывает бизнес-логику sections-service.
type Service struct {
	cfg             *config.Config
	sectionsStorage storage.Sections
	profilesStorage storage.Profiles
	profileCache    ProfileCache
}

// New создает новый экземпляр Service.
// profileCache может быть nil — тогда имена организаторов читаются напрямую из хранилища.
func New(sectionsStorage storage.Sections, profilesStorage storage.Profiles, profileCache ProfileCache, cfg *config.Config) *Service {
	return &Service{
		cfg:             cfg,
		sectionsStorage: sectionsStorage,
		profilesStorage: profilesStorage,
		profileCache:    profileCache,
	}
}

// profiles — источник профилей для поиска имени организатора.
func (s *Service) profiles() models.ProfileFinder {
	if s.profileCache != nil {
		return s.profileCache
	}

	return s.profilesStorage
}
