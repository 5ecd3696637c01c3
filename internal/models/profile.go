package models

import (
	"time"

	"github.com/pribylovaa/hobby-sections/internal/keys"
)

// KindProfile — вид ключа профиля.
const KindProfile = "Profile"

// Profile — профиль пользователя-организатора.
// Для sections-service это внешний справочник: нужен только DisplayName.
type Profile struct {
	UserID      string
	DisplayName string
	MainEmail   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Key возвращает ключ профиля.
func (p *Profile) Key() keys.Key { return ProfileKey(p.UserID) }

// Update меняет отображаемое имя; пустое значение игнорируется.
func (p *Profile) Update(displayName string) {
	if displayName != "" {
		p.DisplayName = displayName
	}
}

// ProfileKey собирает корневой ключ профиля пользователя userID.
func ProfileKey(userID string) keys.Key {
	return keys.NewNamed(nil, KindProfile, userID)
}
