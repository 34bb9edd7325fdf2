package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

const policiesTable = "policies p"

type PolicyRepository interface {
	ListPolicies(ctx context.Context, scope domain.PolicyScope) ([]*domain.Policy, error)
	GetPolicy(ctx context.Context, id string) (*domain.Policy, error)
}

type policyRepository struct {
	conn postgres.Queryer
}

func NewPolicyRepository(conn postgres.Queryer) PolicyRepository {
	return &policyRepository{conn: conn}
}

func selectPolicies() squirrel.SelectBuilder {
	return squirrel.
		Select("p.id, p.name, p.description, p.scope, p.campaign_id, p.is_default, p.brand_guidelines, p.min_ctr, p.min_conversions, p.max_frequency, p.created_at").
		From(policiesTable).
		PlaceholderFormat(squirrel.Dollar)
}

// ListPolicies lista por escopo com a padrão primeiro; escopo vazio lista todas
func (r *policyRepository) ListPolicies(ctx context.Context, scope domain.PolicyScope) ([]*domain.Policy, error) {
	builder := selectPolicies().OrderBy("p.is_default DESC", "p.name ASC")
	if scope != "" {
		builder = builder.Where(squirrel.Eq{"p.scope": scope})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando listagem de políticas")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listando políticas")
	}
	defer rows.Close()

	policies := make([]*domain.Policy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, errors.Wrap(err, "lendo política")
		}
		policies = append(policies, policy)
	}

	return policies, errors.Wrap(rows.Err(), "iterando políticas")
}

func (r *policyRepository) GetPolicy(ctx context.Context, id string) (*domain.Policy, error) {
	query, args, err := selectPolicies().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando consulta de política")
	}

	policy, err := scanPolicy(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "buscando política %s", id)
	}

	return policy, nil
}

func scanPolicy(row scanner) (*domain.Policy, error) {
	p := &domain.Policy{}
	var campaignID sql.NullString
	var guidelines pq.StringArray

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Scope,
		&campaignID,
		&p.IsDefault,
		&guidelines,
		&p.MinCTR,
		&p.MinConversions,
		&p.MaxFrequency,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	if campaignID.Valid {
		p.CampaignID = &campaignID.String
	}
	p.BrandGuidelines = []string(guidelines)

	return p, nil
}
