package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

const creativesTable = "creatives c"

type CreativeRepository interface {
	GetCreative(ctx context.Context, id string) (*domain.Creative, error)
	GetCreativesByIDs(ctx context.Context, ids []string) ([]*domain.Creative, error)
	ListCreatives(ctx context.Context) ([]*domain.Creative, error)
	UpsertCreatives(ctx context.Context, q postgres.Queryer, creatives []*domain.Creative) (map[string]string, error)
}

type creativeRepository struct {
	conn postgres.Queryer
}

func NewCreativeRepository(conn postgres.Queryer) CreativeRepository {
	return &creativeRepository{conn: conn}
}

func selectCreatives() squirrel.SelectBuilder {
	return squirrel.
		Select("c.id, c.external_id, c.integration_id, c.campaign_id, c.ad_set_id, c.name, c.format, c.thumbnail_url, c.impressions, c.clicks, c.conversions, c.updated_at").
		From(creativesTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *creativeRepository) GetCreative(ctx context.Context, id string) (*domain.Creative, error) {
	query, args, err := selectCreatives().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando consulta de criativo")
	}

	creative, err := scanCreative(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "buscando criativo %s", id)
	}

	return creative, nil
}

// GetCreativesByIDs não garante a ordem dos IDs; quem chama reordena
func (r *creativeRepository) GetCreativesByIDs(ctx context.Context, ids []string) ([]*domain.Creative, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := selectCreatives().Where(squirrel.Eq{"c.id": ids}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando consulta de criativos")
	}

	return r.list(ctx, query, args)
}

func (r *creativeRepository) ListCreatives(ctx context.Context) ([]*domain.Creative, error) {
	query, args, err := selectCreatives().OrderBy("c.name ASC", "c.id ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando listagem de criativos")
	}

	return r.list(ctx, query, args)
}

func (r *creativeRepository) list(ctx context.Context, query string, args []interface{}) ([]*domain.Creative, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listando criativos")
	}
	defer rows.Close()

	creatives := make([]*domain.Creative, 0)
	for rows.Next() {
		creative, err := scanCreative(rows)
		if err != nil {
			return nil, errors.Wrap(err, "lendo criativo")
		}
		creatives = append(creatives, creative)
	}

	return creatives, errors.Wrap(rows.Err(), "iterando criativos")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCreative(row scanner) (*domain.Creative, error) {
	c := &domain.Creative{}
	var thumbnail sql.NullString

	if err := row.Scan(
		&c.ID,
		&c.ExternalID,
		&c.IntegrationID,
		&c.CampaignID,
		&c.AdSetID,
		&c.Name,
		&c.Format,
		&thumbnail,
		&c.Impressions,
		&c.Clicks,
		&c.Conversions,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if thumbnail.Valid {
		c.ThumbnailURL = &thumbnail.String
	}

	return c, nil
}

// UpsertCreatives grava os criativos espelhados e devolve external_id -> id interno
func (r *creativeRepository) UpsertCreatives(ctx context.Context, q postgres.Queryer, creatives []*domain.Creative) (map[string]string, error) {
	ids := make(map[string]string, len(creatives))
	if len(creatives) == 0 {
		return ids, nil
	}
	if q == nil {
		q = r.conn
	}

	query := squirrel.StatementBuilder.
		Insert("creatives").
		Columns("id", "external_id", "integration_id", "campaign_id", "ad_set_id", "name", "format", "thumbnail_url", "impressions", "clicks", "conversions", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range creatives {
		query = query.Values(
			c.ID,
			c.ExternalID,
			c.IntegrationID,
			c.CampaignID,
			c.AdSetID,
			c.Name,
			c.Format,
			c.ThumbnailURL,
			c.Impressions,
			c.Clicks,
			c.Conversions,
			c.UpdatedAt,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (integration_id, external_id) DO UPDATE SET
			campaign_id = EXCLUDED.campaign_id,
			ad_set_id = EXCLUDED.ad_set_id,
			name = EXCLUDED.name,
			format = EXCLUDED.format,
			thumbnail_url = EXCLUDED.thumbnail_url,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions,
			updated_at = EXCLUDED.updated_at
		RETURNING external_id, id
	`)

	return upsertReturningIDs(ctx, q, query, ids)
}

func upsertReturningIDs(ctx context.Context, q postgres.Queryer, query squirrel.InsertBuilder, ids map[string]string) (map[string]string, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := q.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapPQ(err)
	}
	defer rows.Close()

	for rows.Next() {
		var externalID, id string
		if err := rows.Scan(&externalID, &id); err != nil {
			return nil, errors.Wrap(err, "lendo IDs gravados")
		}
		ids[externalID] = id
	}

	return ids, errors.Wrap(rows.Err(), "iterando IDs gravados")
}
