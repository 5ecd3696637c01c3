package handlers

import (
	"time"

	"github.com/pribylovaa/hobby-sections/internal/models"
)

// SectionRequest — тело POST/PUT секции.
// Отсутствующий city (null) означает «не задан» и заменяется городом по умолчанию.
type SectionRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	City        *string  `json:"city"`
	Address     string   `json:"address"`
	WorkingTime string   `json:"working_time"`
	Price       int      `json:"price"`
}

func (r SectionRequest) Form() models.SectionForm {
	return models.NewSectionForm(models.SectionFormInput{
		Name:        r.Name,
		Description: r.Description,
		Categories:  r.Categories,
		City:        r.City,
		Address:     r.Address,
		WorkingTime: r.WorkingTime,
		Price:       r.Price,
	})
}

// SectionResponse — представление секции для клиента.
type SectionResponse struct {
	WebsafeKey           string   `json:"websafe_key"`
	ID                   int64    `json:"id"`
	OwnerID              string   `json:"owner_id"`
	OrganizerDisplayName string   `json:"organizer_display_name"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Categories           []string `json:"categories"`
	City                 string   `json:"city"`
	Address              string   `json:"address"`
	WorkingTime          string   `json:"working_time"`
	Price                int      `json:"price"`
}

func sectionFromModel(s *models.Section, organizer string) SectionResponse {
	categories := s.Categories()
	if categories == nil {
		categories = []string{}
	}

	return SectionResponse{
		WebsafeKey:           s.WebsafeKey(),
		ID:                   s.ID(),
		OwnerID:              s.OwnerID(),
		OrganizerDisplayName: organizer,
		Name:                 s.Name(),
		Description:          s.Description(),
		Categories:           categories,
		City:                 s.City(),
		Address:              s.Address(),
		WorkingTime:          s.WorkingTime(),
		Price:                s.Price(),
	}
}

// SectionListResponse — страница секций.
type SectionListResponse struct {
	Items []SectionResponse `json:"items"`
}

// ProfileRequest — тело PUT профиля.
type ProfileRequest struct {
	DisplayName string `json:"display_name"`
	MainEmail   string `json:"main_email"`
}

// ProfileResponse — представление профиля организатора.
type ProfileResponse struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	MainEmail   string    `json:"main_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func profileFromModel(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		MainEmail:   p.MainEmail,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
