// handlers реализует REST-эндпоинты sections-service поверх сервисного слоя.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/service"
)

// Service — операции сервисного слоя, нужные хендлерам (реализуется *service.Service).
type Service interface {
	CreateSection(ctx context.Context, ownerID string, form models.SectionForm) (*models.Section, error)
	SectionByKey(ctx context.Context, websafeKey string) (*models.Section, error)
	UpdateSection(ctx context.Context, websafeKey string, form models.SectionForm) (*models.Section, error)
	DeleteSection(ctx context.Context, websafeKey string) error
	ListSections(ctx context.Context, query service.SectionQuery) ([]*models.Section, error)
	OrganizerDisplayName(ctx context.Context, section *models.Section) (string, error)
	SaveProfile(ctx context.Context, input service.ProfileInput) (*models.Profile, error)
	ProfileByID(ctx context.Context, userID string) (*models.Profile, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Service
}

func New(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: body: %w", service.ErrInvalidArgument, err)
	}
	return nil
}

// queryInt читает неотрицательное целое из query; пусто — 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: query %s=%q", service.ErrInvalidArgument, name, raw)
	}

	return v, nil
}
