package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/hobby-sections/internal/errors"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/service"
)

// sectionView дополняет секцию именем организатора.
func (h *Handlers) sectionView(r *http.Request, s *models.Section) (SectionResponse, error) {
	organizer, err := h.svc.OrganizerDisplayName(r.Context(), s)
	if err != nil {
		return SectionResponse{}, err
	}

	return sectionFromModel(s, organizer), nil
}

func (h *Handlers) writeSection(w http.ResponseWriter, r *http.Request, status int, s *models.Section) {
	view, err := h.sectionView(r, s)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, status, view)
}

// CreateSection — POST /profiles/{user_id}/sections.
func (h *Handlers) CreateSection(w http.ResponseWriter, r *http.Request) {
	var in SectionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	section, err := h.svc.CreateSection(r.Context(), chi.URLParam(r, "user_id"), in.Form())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", "sections/"+section.WebsafeKey())
	h.writeSection(w, r, http.StatusCreated, section)
}

// GetSection — GET /sections/{websafe_key}.
func (h *Handlers) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.svc.SectionByKey(r.Context(), chi.URLParam(r, "websafe_key"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeSection(w, r, http.StatusOK, section)
}

// UpdateSection — PUT /sections/{websafe_key}.
func (h *Handlers) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var in SectionRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	section, err := h.svc.UpdateSection(r.Context(), chi.URLParam(r, "websafe_key"), in.Form())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeSection(w, r, http.StatusOK, section)
}

// DeleteSection — DELETE /sections/{websafe_key}.
func (h *Handlers) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSection(r.Context(), chi.URLParam(r, "websafe_key")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DebugSection — GET /sections/{websafe_key}/debug, text/plain.
func (h *Handlers) DebugSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.svc.SectionByKey(r.Context(), chi.URLParam(r, "websafe_key"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, section.DebugString())
}

// ListSections — GET /sections и GET /profiles/{user_id}/sections.
// Query: city, category, limit, offset.
func (h *Handlers) ListSections(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	q := r.URL.Query()
	sections, err := h.svc.ListSections(r.Context(), service.SectionQuery{
		OwnerID:  chi.URLParam(r, "user_id"),
		City:     q.Get("city"),
		Category: q.Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := SectionListResponse{Items: make([]SectionResponse, 0, len(sections))}
	for _, s := range sections {
		view, err := h.sectionView(r, s)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		resp.Items = append(resp.Items, view)
	}

	writeJSON(w, http.StatusOK, resp)
}
