// storage содержит контракты слоя хранилищ sections-service.
//
// profiles.go - точечный поиск и запись профилей организаторов (внешний справочник).
// sections.go - выделение id, создание/чтение/обновление/удаление и выборка секций.
package storage

import "errors"

var (
	// ErrNotFoundSection — секция не найдена.
	ErrNotFoundSection = errors.New("section not found")
	// ErrNotFoundProfile — профиль не найден.
	ErrNotFoundProfile = errors.New("profile not found")
	// ErrAlreadyExists — запись с тем же ключом уже существует.
	ErrAlreadyExists = errors.New("already exists")
)

// Storage — верхнеуровневый интерфейс хранилища: профили + секции.
type Storage interface {
	Profiles
	Sections
	Close()
}
