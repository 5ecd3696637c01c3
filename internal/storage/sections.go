package storage

import (
	"context"

	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
)

// SectionFilter — параметры выборки секций.
// Пустые строковые поля не фильтруют; Limit <= 0 означает «без ограничения».
type SectionFilter struct {
	OwnerID  string
	City     string
	Category string
	Limit    int
	Offset   int
}

// Sections — контракт репозитория секций.
// Ключ секции всегда имеет вид Profile(owner)/Section(id), см. models.SectionKey.
type Sections interface {
	// NextSectionID выделяет новый id секции в пространстве владельца ownerID.
	NextSectionID(ctx context.Context, ownerID string) (int64, error)
	// CreateSection сохраняет новую секцию. ErrAlreadyExists при совпадении ключа.
	CreateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	// SectionByKey возвращает секцию по ключу или ErrNotFoundSection.
	SectionByKey(ctx context.Context, key keys.Key) (*models.Section, error)
	// UpdateSection перезаписывает изменяемые поля секции. ErrNotFoundSection при отсутствии.
	UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error)
	// DeleteSection удаляет секцию по ключу. ErrNotFoundSection при отсутствии.
	DeleteSection(ctx context.Context, key keys.Key) error
	// ListSections возвращает секции по фильтру, упорядоченные по (owner_id, id).
	ListSections(ctx context.Context, filter SectionFilter) ([]*models.Section, error)
}

// SectionKeyParts разбирает ключ секции на владельца и id.
// ok=false, если ключ не является ключом секции.
func SectionKeyParts(key keys.Key) (ownerID string, id int64, ok bool) {
	if key.Kind != models.KindSection || key.ID <= 0 || key.Parent == nil {
		return "", 0, false
	}

	parent := key.Parent
	if parent.Kind != models.KindProfile || parent.Name == "" || parent.Parent != nil {
		return "", 0, false
	}

	return parent.Name, key.ID, true
}

// ProfileKeyID возвращает user_id из ключа профиля.
func ProfileKeyID(key keys.Key) (string, bool) {
	if key.Kind != models.KindProfile || key.Name == "" || key.Parent != nil {
		return "", false
	}

	return key.Name, true
}
