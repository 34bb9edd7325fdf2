package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/creative-audit-api/infrastructure/database/postgres"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const auditsTable = "audits au"

type AuditRepository interface {
	Save(ctx context.Context, audit *domain.Audit) error
	DeleteAudit(ctx context.Context, auditID string) error
	ListByCreative(ctx context.Context, creativeID string) ([]*domain.Audit, error)
}

type auditRepository struct {
	conn postgres.Queryer
}

func NewAuditRepository(conn postgres.Queryer) AuditRepository {
	return &auditRepository{conn: conn}
}

func (r *auditRepository) Save(ctx context.Context, audit *domain.Audit) error {
	issues, err := json.Marshal(audit.Issues)
	if err != nil {
		return errors.Wrap(err, "serializando issues da auditoria")
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("audits").
		Columns("id", "creative_id", "policy_id", "compliance_score", "performance_score", "status", "issues", "recommendations", "created_at").
		Values(
			audit.ID,
			audit.CreativeID,
			audit.PolicyID,
			audit.ComplianceScore,
			audit.PerformanceScore,
			audit.Status,
			string(issues),
			pq.Array(audit.Recommendations),
			audit.CreatedAt,
		).
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

// DeleteAudit devolve domain.ErrAuditNotFound quando nada foi removido
func (r *auditRepository) DeleteAudit(ctx context.Context, auditID string) error {
	query, args, err := squirrel.StatementBuilder.
		Delete("audits").
		Where(squirrel.Eq{"id": auditID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapPQ(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "lendo linhas removidas")
	}
	if affected == 0 {
		return domain.ErrAuditNotFound
	}

	return nil
}

// ListByCreative devolve da mais recente para a mais antiga
func (r *auditRepository) ListByCreative(ctx context.Context, creativeID string) ([]*domain.Audit, error) {
	query, args, err := squirrel.
		Select("au.id, au.creative_id, au.policy_id, au.compliance_score, au.performance_score, au.status, au.issues, au.recommendations, au.created_at").
		From(auditsTable).
		Where(squirrel.Eq{"au.creative_id": creativeID}).
		OrderBy("au.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "montando listagem de auditorias")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listando auditorias")
	}
	defer rows.Close()

	audits := make([]*domain.Audit, 0)
	for rows.Next() {
		audit := &domain.Audit{}
		var issues []byte
		var recommendations pq.StringArray

		if err := rows.Scan(
			&audit.ID,
			&audit.CreativeID,
			&audit.PolicyID,
			&audit.ComplianceScore,
			&audit.PerformanceScore,
			&audit.Status,
			&issues,
			&recommendations,
			&audit.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "lendo auditoria")
		}

		if len(issues) > 0 {
			if err := json.Unmarshal(issues, &audit.Issues); err != nil {
				return nil, errors.Wrapf(err, "issues inválidas na auditoria %s", audit.ID)
			}
		}
		audit.Recommendations = []string(recommendations)

		audits = append(audits, audit)
	}

	return audits, errors.Wrap(rows.Err(), "iterando auditorias")
}
