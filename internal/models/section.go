// models содержит доменные сущности sections-service: секции (Section), их формы
// (SectionForm) и профили организаторов (Profile).
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/pribylovaa/hobby-sections/internal/keys"
)

const (
	// KindSection — вид ключа секции.
	KindSection = "Section"
	// DefaultCity подставляется, если город в форме не передан.
	DefaultCity = "Default City"
)

// defaultCategories подставляются, если категории в форме не переданы или пусты.
var defaultCategories = []string{"Default", "Topic"}

// DefaultCategories возвращает копию категорий по умолчанию.
func DefaultCategories() []string { return slices.Clone(defaultCategories) }

// Section — секция (событие/объявление), принадлежащая профилю организатора.
//
// ID и владелец задаются один раз при создании и больше не меняются;
// остальные поля перезаписываются через Update.
// Section не потокобезопасна: доступ к одному экземпляру сериализует вызывающий.
type Section struct {
	id          int64
	profileKey  keys.Key
	ownerID     string
	name        string
	description string
	categories  []string
	city        *string
	address     string
	workingTime string
	price       int
}

// NewSection создаёт секцию с выделенным хранилищем id для владельца ownerID
// и нормализует поля из формы.
// Ошибки: *ValidationError (ErrValidation), если имя пустое.
func NewSection(id int64, ownerID string, form SectionForm) (*Section, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	s := &Section{
		id:         id,
		profileKey: ProfileKey(ownerID),
		ownerID:    ownerID,
	}
	s.Update(form)

	return s, nil
}

// Update перезаписывает изменяемые поля из формы с подстановкой значений по умолчанию:
//   - пустые/непереданные категории -> DefaultCategories();
//   - непереданный город -> DefaultCity.
//
// Идентичность (id, владелец) не меняется. Категории копируются.
func (s *Section) Update(form SectionForm) {
	s.name = form.Name()
	s.description = form.Description()

	if categories := form.Categories(); len(categories) > 0 {
		s.categories = categories
	} else {
		s.categories = DefaultCategories()
	}

	city := DefaultCity
	if c, ok := form.City(); ok {
		city = c
	}
	s.city = &city

	s.address = form.Address()
	s.workingTime = form.WorkingTime()
	s.price = form.Price()
}

func (s *Section) ID() int64           { return s.id }
func (s *Section) OwnerID() string     { return s.ownerID }
func (s *Section) Name() string        { return s.name }
func (s *Section) Description() string { return s.description }
func (s *Section) Address() string     { return s.address }
func (s *Section) WorkingTime() string { return s.workingTime }
func (s *Section) Price() int          { return s.price }

// ProfileKey возвращает ключ профиля-владельца (родитель ключа секции).
func (s *Section) ProfileKey() keys.Key { return s.profileKey }

// Categories возвращает независимую копию категорий.
// nil возможен только для записи, восстановленной без категорий (см. SectionFromRecord).
func (s *Section) Categories() []string { return slices.Clone(s.categories) }

// City возвращает город. Для записи без города (только через SectionFromRecord)
// результат — "", как и для явно пустого города; различить их позволяет LookupCity.
func (s *Section) City() string {
	city, _ := s.LookupCity()
	return city
}

// LookupCity возвращает город и признак того, что он задан.
func (s *Section) LookupCity() (string, bool) {
	if s.city == nil {
		return "", false
	}

	return *s.city, true
}

// Key возвращает полный ключ секции: Profile(ownerID)/Section(id).
func (s *Section) Key() keys.Key {
	return SectionKey(s.ownerID, s.id)
}

// WebsafeKey возвращает ключ секции в виде websafe-строки.
func (s *Section) WebsafeKey() string {
	return s.Key().Encode()
}

// ProfileFinder — точечный поиск профиля по ключу.
// found=false означает отсутствие записи и не является ошибкой.
type ProfileFinder interface {
	FindProfile(ctx context.Context, key keys.Key) (profile *Profile, found bool, err error)
}

// OrganizerDisplayName возвращает отображаемое имя организатора.
// Если профиля нет — возвращает ownerID. Ошибки хранилища возвращаются как есть.
func (s *Section) OrganizerDisplayName(ctx context.Context, profiles ProfileFinder) (string, error) {
	profile, found, err := profiles.FindProfile(ctx, s.profileKey)
	if err != nil {
		return "", err
	}

	if !found || profile == nil {
		return s.ownerID, nil
	}

	return profile.DisplayName, nil
}

// DebugString — детерминированное многострочное описание для логов и отладки.
// Строка City выводится только при заданном городе, блок Categories — только при
// непустых категориях.
func (s *Section) DebugString() string {
	var b strings.Builder

	b.WriteString("Id: " + strconv.FormatInt(s.id, 10) + "\n")
	b.WriteString("Name: " + s.name + "\n")

	if city, ok := s.LookupCity(); ok {
		b.WriteString("City: " + city + "\n")
	}

	if len(s.categories) > 0 {
		b.WriteString("Categories:\n")
		for _, c := range s.categories {
			b.WriteString("\t" + c + "\n")
		}
	}

	return b.String()
}

func (s *Section) String() string { return s.DebugString() }

// SectionKey собирает ключ секции id владельца ownerID.
func SectionKey(ownerID string, id int64) keys.Key {
	parent := ProfileKey(ownerID)

	return keys.New(&parent, KindSection, id)
}

// SectionRecord — плоское представление секции для слоя хранилища.
// City == nil и Categories == nil допустимы только для записей, сохранённых в обход Section.
type SectionRecord struct {
	ID          int64
	OwnerID     string
	Name        string
	Description string
	Categories  []string
	City        *string
	Address     string
	WorkingTime string
	Price       int
}

// Record возвращает копию состояния секции для сохранения.
func (s *Section) Record() SectionRecord {
	rec := SectionRecord{
		ID:          s.id,
		OwnerID:     s.ownerID,
		Name:        s.name,
		Description: s.description,
		Categories:  slices.Clone(s.categories),
		Address:     s.address,
		WorkingTime: s.workingTime,
		Price:       s.price,
	}

	if s.city != nil {
		city := *s.city
		rec.City = &city
	}

	return rec
}

// SectionFromRecord восстанавливает секцию из сохранённого состояния без повторной
// нормализации: значения по умолчанию применяются только при создании и Update.
func SectionFromRecord(rec SectionRecord) *Section {
	s := &Section{
		id:          rec.ID,
		profileKey:  ProfileKey(rec.OwnerID),
		ownerID:     rec.OwnerID,
		name:        rec.Name,
		description: rec.Description,
		categories:  slices.Clone(rec.Categories),
		address:     rec.Address,
		workingTime: rec.WorkingTime,
		price:       rec.Price,
	}

	if rec.City != nil {
		city := *rec.City
		s.city = &city
	}

	return s
}
