package models

import (
	"math"
	"slices"
)

// SectionForm — неизменяемые данные секции, присланные клиентом.
// Единственное правило — непустое имя (Validate).
type SectionForm struct {
	name        string
	description string
	categories  []string
	city        *string
	address     string
	workingTime string
	price       int
}

// SectionFormInput — значения полей формы. Нулевой City означает «не задан».
type SectionFormInput struct {
	Name        string
	Description string
	Categories  []string
	City        *string
	Address     string
	WorkingTime string
	Price       int
}

// NewSectionForm сохраняет значения как есть; categories и city копируются,
// поэтому последующие изменения in не влияют на форму.
func NewSectionForm(in SectionFormInput) SectionForm {
	f := SectionForm{
		name:        in.Name,
		description: in.Description,
		categories:  slices.Clone(in.Categories),
		address:     in.Address,
		workingTime: in.WorkingTime,
		price:       in.Price,
	}

	if in.City != nil {
		city := *in.City
		f.city = &city
	}

	return f
}

func (f SectionForm) Name() string        { return f.name }
func (f SectionForm) Description() string { return f.description }
func (f SectionForm) Address() string     { return f.address }
func (f SectionForm) WorkingTime() string { return f.workingTime }
func (f SectionForm) Price() int          { return f.price }

// Categories возвращает копию категорий (nil, если они не переданы).
func (f SectionForm) Categories() []string { return slices.Clone(f.categories) }

// City возвращает город и признак того, что он был передан.
func (f SectionForm) City() (string, bool) {
	if f.city == nil {
		return "", false
	}

	return *f.city, true
}

// Validate проверяет форму: имя обязательно, цена укладывается в 32-битное целое
// (колонка price в postgres — INTEGER). Остальные поля произвольны.
func (f SectionForm) Validate() error {
	if f.name == "" {
		return NewValidationError("name", "required")
	}

	if f.price < math.MinInt32 || f.price > math.MaxInt32 {
		return NewValidationError("price", "out of range")
	}

	return nil
}
