package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

const integrationsTable = "integrations i"

type IntegrationRepository interface {
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
	GetIntegration(ctx context.Context, id string) (*domain.Integration, error)
	UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error
	MarkSynced(ctx context.Context, id string, at time.Time) error
}

type integrationRepository struct {
	conn postgres.Queryer
}

func NewIntegrationRepository(conn postgres.Queryer) IntegrationRepository {
	return &integrationRepository{conn: conn}
}

func selectIntegrations() squirrel.SelectBuilder {
	return squirrel.
		Select("i.id, i.platform, i.external_account_id, i.account_name, i.status, i.last_sync, i.access_token").
		From(integrationsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *integrationRepository) ListIntegrations(ctx context.Context) ([]*domain.Integration, error) {
	query, args, err := selectIntegrations().OrderBy("i.account_name ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando listagem de integrações")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listando integrações")
	}
	defer rows.Close()

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration, err := scanIntegration(rows)
		if err != nil {
			return nil, errors.Wrap(err, "lendo integração")
		}
		integrations = append(integrations, integration)
	}

	return integrations, errors.Wrap(rows.Err(), "iterando integrações")
}

func (r *integrationRepository) GetIntegration(ctx context.Context, id string) (*domain.Integration, error) {
	query, args, err := selectIntegrations().Where(squirrel.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando consulta de integração")
	}

	integration, err := scanIntegration(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "buscando integração %s", id)
	}

	return integration, nil
}

func scanIntegration(row scanner) (*domain.Integration, error) {
	i := &domain.Integration{}
	var lastSync sql.NullTime
	var token sql.NullString

	if err := row.Scan(
		&i.ID,
		&i.Platform,
		&i.ExternalAccountID,
		&i.AccountName,
		&i.Status,
		&lastSync,
		&token,
	); err != nil {
		return nil, err
	}

	if lastSync.Valid {
		i.LastSync = &lastSync.Time
	}
	i.AccessToken = token.String

	return i, nil
}

func (r *integrationRepository) UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": status})
}

// MarkSynced registra o fim de uma sincronização completa e reativa a integração
func (r *integrationRepository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_sync": at, "status": domain.IntegrationStatusActive})
}

func (r *integrationRepository) update(ctx context.Context, id string, values map[string]interface{}) error {
	query, args, err := squirrel.StatementBuilder.
		Update("integrations").
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return wrapPQ(err)
	}

	return nil
}
