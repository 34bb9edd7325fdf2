package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

// CampaignRepository grava o espelho de campanhas e conjuntos de anúncios
type CampaignRepository interface {
	UpsertCampaigns(ctx context.Context, q postgres.Queryer, campaigns []*domain.Campaign) (map[string]string, error)
	UpsertAdSets(ctx context.Context, q postgres.Queryer, adSets []*domain.AdSet) (map[string]string, error)
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{conn: conn}
}

func (r *campaignRepository) UpsertCampaigns(ctx context.Context, q postgres.Queryer, campaigns []*domain.Campaign) (map[string]string, error) {
	ids := make(map[string]string, len(campaigns))
	if len(campaigns) == 0 {
		return ids, nil
	}
	if q == nil {
		q = r.conn
	}

	query := squirrel.StatementBuilder.
		Insert("campaigns").
		Columns("id", "external_id", "integration_id", "name", "status", "objective", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range campaigns {
		query = query.Values(c.ID, c.ExternalID, c.IntegrationID, c.Name, c.Status, c.Objective, c.UpdatedAt)
	}

	query = query.Suffix(`
		ON CONFLICT (integration_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			objective = EXCLUDED.objective,
			updated_at = EXCLUDED.updated_at
		RETURNING external_id, id
	`)

	return upsertReturningIDs(ctx, q, query, ids)
}

func (r *campaignRepository) UpsertAdSets(ctx context.Context, q postgres.Queryer, adSets []*domain.AdSet) (map[string]string, error) {
	ids := make(map[string]string, len(adSets))
	if len(adSets) == 0 {
		return ids, nil
	}
	if q == nil {
		q = r.conn
	}

	query := squirrel.StatementBuilder.
		Insert("ad_sets").
		Columns("id", "external_id", "integration_id", "campaign_id", "name", "status", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, a := range adSets {
		query = query.Values(a.ID, a.ExternalID, a.IntegrationID, a.CampaignID, a.Name, a.Status, a.UpdatedAt)
	}

	query = query.Suffix(`
		ON CONFLICT (integration_id, external_id) DO UPDATE SET
			campaign_id = EXCLUDED.campaign_id,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING external_id, id
	`)

	return upsertReturningIDs(ctx, q, query, ids)
}

func wrapPQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return errors.Wrap(err, "failed to execute query")
}
