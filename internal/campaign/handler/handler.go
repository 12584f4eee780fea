// Package handler exposes the campaign read endpoints.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkind/internal/campaign/models"
	"inkind/internal/campaign/service"
	"inkind/internal/transport/http/shared"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

type Handler struct {
	campaigns *service.Service
	logger    *slog.Logger
}

func New(campaigns *service.Service, logger *slog.Logger) *Handler {
	return &Handler{campaigns: campaigns, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/campaigns", h.handleList)
	r.Get("/campaigns/{campaignID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		campaigns []models.Campaign
		err       error
	)
	if owner := r.URL.Query().Get("owner"); owner != "" {
		campaigns, err = h.campaigns.ListByOwner(r.Context(), id.Address(owner))
	} else {
		campaigns, err = h.campaigns.List(r.Context())
	}
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, campaigns)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid campaign id"))
		return
	}
	campaign, err := h.campaigns.Get(r.Context(), campaignID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, campaign)
}
