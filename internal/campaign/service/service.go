// Package service exposes the campaign read model. Campaigns are created and
// funded elsewhere; this process only reads them to anchor material donations.
package service

import (
	"context"

	"inkind/internal/campaign/models"
	"inkind/internal/ledger"
	id "inkind/pkg/domain"
	dErrors "inkind/pkg/domain-errors"
)

type Service struct {
	ledger ledger.Client
}

func New(client ledger.Client) *Service {
	return &Service{ledger: client}
}

func (s *Service) List(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := s.ledger.GetCampaigns(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeNetwork, "campaign list read failed", err)
	}
	return campaigns, nil
}

// ListByOwner narrows the snapshot to one owner's campaigns. The ledger has
// no owner-filtered read, so the full list is filtered locally by exact
// address equality.
func (s *Service) ListByOwner(ctx context.Context, owner id.Address) ([]models.Campaign, error) {
	campaigns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Campaign, 0, len(campaigns))
	for _, campaign := range campaigns {
		if campaign.Owner.Equal(owner) {
			out = append(out, campaign)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, campaignID id.CampaignID) (models.Campaign, error) {
	campaign, err := s.ledger.GetCampaign(ctx, campaignID)
	switch {
	case ledger.IsNotFound(err):
		return models.Campaign{}, dErrors.Wrap(dErrors.CodeNotFound, "campaign not on ledger", err)
	case err != nil:
		return models.Campaign{}, dErrors.Wrap(dErrors.CodeNetwork, "campaign read failed", err)
	}
	return campaign, nil
}
