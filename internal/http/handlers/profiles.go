package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/hobby-sections/internal/errors"
	"github.com/pribylovaa/hobby-sections/internal/service"
)

// GetProfile — GET /profiles/{user_id}.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ProfileByID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileFromModel(profile))
}

// SaveProfile — PUT /profiles/{user_id}; user_id берём из пути.
func (h *Handlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var in ProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	profile, err := h.svc.SaveProfile(r.Context(), service.ProfileInput{
		UserID:      chi.URLParam(r, "user_id"),
		DisplayName: in.DisplayName,
		MainEmail:   in.MainEmail,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileFromModel(profile))
}
