// Package handler is the thin HTTP layer over the donation engine and view.
// It parses, delegates, and renders; every lifecycle rule lives below it.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkind/internal/audit"
	campaignmodels "inkind/internal/campaign/models"
	"inkind/internal/donation/engine"
	"inkind/internal/donation/models"
	"inkind/internal/donation/policy"
	"inkind/internal/donation/view"
	"inkind/internal/platform/middleware"
	"inkind/internal/transport/http/shared"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
	"inkind/pkg/requestcontext"
)

// Engine is the lifecycle surface the handler delegates mutations to.
type Engine interface {
	Pledge(ctx context.Context, campaignID id.CampaignID, descriptor models.MaterialDescriptor) (*models.Donation, error)
	RequestTransition(ctx context.Context, donationID id.DonationID, target models.Status, role policy.Role, extra engine.Extra) (*models.Donation, error)
}

// Campaigns resolves campaign records for role derivation.
type Campaigns interface {
	Get(ctx context.Context, campaignID id.CampaignID) (campaignmodels.Campaign, error)
}

// Handler handles donation endpoints.
type Handler struct {
	engine     Engine
	view       *view.View
	campaigns  Campaigns
	auditStore audit.Store
	logger     *slog.Logger
	validator  middleware.SessionValidator
}

func New(engine Engine, v *view.View, campaigns Campaigns, auditStore audit.Store, validator middleware.SessionValidator, logger *slog.Logger) *Handler {
	return &Handler{
		engine:     engine,
		view:       v,
		campaigns:  campaigns,
		auditStore: auditStore,
		validator:  validator,
		logger:     logger,
	}
}

// Register mounts the donation routes. Mutating routes require a wallet
// session; reads are public.
func (h *Handler) Register(r chi.Router) {
	requireWallet := middleware.RequireWallet(h.validator, h.logger)

	r.Route("/campaigns/{campaignID}/donations", func(r chi.Router) {
		r.Get("/", h.handleListCampaignDonations)
		r.With(requireWallet).Post("/", h.handlePledge)
	})

	r.Route("/donations/{donationID}", func(r chi.Router) {
		r.Get("/", h.handleGetDonation)
		r.Get("/audit", h.handleGetAudit)
		r.With(requireWallet).Post("/refresh", h.handleRefresh)
		r.With(requireWallet).Post("/transition", h.handleTransition)
	})
}

type transitionRequest struct {
	Target       string `json:"target"`
	TrackingCode string `json:"tracking_code,omitempty"`
	Note         string `json:"note,omitempty"`
}

func (h *Handler) handlePledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid campaign id"))
		return
	}

	var descriptor models.MaterialDescriptor
	if err := json.NewDecoder(r.Body).Decode(&descriptor); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	donation, err := h.engine.Pledge(ctx, campaignID, descriptor)
	if err != nil {
		h.logger.WarnContext(ctx, "pledge failed",
			"request_id", requestcontext.RequestID(ctx),
			"campaign_id", campaignID,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, donation)
}

func (h *Handler) handleListCampaignDonations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid campaign id"))
		return
	}

	entries, err := h.view.CampaignDonations(ctx, campaignID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleGetDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	entry, err := h.view.Get(ctx, donationID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	entry, err := h.view.Refresh(ctx, donationID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	role, err := h.roleFor(ctx, donationID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	donation, err := h.engine.RequestTransition(ctx, donationID, models.Status(req.Target), role, engine.Extra{
		TrackingCode: req.TrackingCode,
		Note:         req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "transition failed",
			"request_id", requestID,
			"donation_id", donationID,
			"target", req.Target,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, donation)
}

func (h *Handler) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donationID, err := id.ParseDonationID(chi.URLParam(r, "donationID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid donation id"))
		return
	}

	events, err := h.auditStore.ListByDonation(ctx, donationID)
	if err != nil {
		shared.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "audit read failed", err))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

// roleFor derives the caller's role from the donation's donor and its
// campaign's owner, by exact address comparison.
func (h *Handler) roleFor(ctx context.Context, donationID id.DonationID) (policy.Role, error) {
	caller := requestcontext.WalletAddress(ctx)
	entry, err := h.view.Get(ctx, donationID)
	if err != nil {
		return policy.RoleOther, err
	}
	campaign, err := h.campaigns.Get(ctx, entry.Donation.CampaignID)
	if err != nil {
		return policy.RoleOther, err
	}
	return policy.RoleFor(caller, entry.Donation.Donor, campaign.Owner), nil
}
