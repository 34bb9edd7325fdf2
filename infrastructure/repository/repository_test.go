package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

type execResult struct {
	affected int64
}

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return r.affected, nil }

// execQueryer grava o último Exec; Query e QueryRow não são usados nesses testes
type execQueryer struct {
	query    string
	args     []interface{}
	affected int64
	err      error
}

func (q *execQueryer) Exec(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	q.query = query
	q.args = args
	if q.err != nil {
		return nil, q.err
	}
	return execResult{affected: q.affected}, nil
}

func (q *execQueryer) Query(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *execQueryer) QueryRow(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestAuditRepository_DeleteAudit(t *testing.T) {
	tests := []struct {
		name     string
		queryer  *execQueryer
		validate func(t *testing.T, q *execQueryer, err error)
	}{
		{
			name:    "Remove uma linha - sucesso",
			queryer: &execQueryer{affected: 1},
			validate: func(t *testing.T, q *execQueryer, err error) {
				require.NoError(t, err)
				assert.Equal(t, "DELETE FROM audits WHERE id = $1", q.query)
				assert.Equal(t, []interface{}{"A1"}, q.args)
			},
		},
		{
			name:    "Nenhuma linha - auditoria não encontrada",
			queryer: &execQueryer{affected: 0},
			validate: func(t *testing.T, _ *execQueryer, err error) {
				assert.ErrorIs(t, err, domain.ErrAuditNotFound)
			},
		},
		{
			name:    "Erro do banco - propaga sem virar NotFound",
			queryer: &execQueryer{err: errors.New("connection reset")},
			validate: func(t *testing.T, _ *execQueryer, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, domain.ErrAuditNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewAuditRepository(tt.queryer)
			err := repo.DeleteAudit(context.Background(), "A1")
			tt.validate(t, tt.queryer, err)
		})
	}
}

func TestAuditRepository_Save(t *testing.T) {
	q := &execQueryer{affected: 1}
	repo := NewAuditRepository(q)

	audit := &domain.Audit{
		ID:              "A1",
		CreativeID:      "C1",
		PolicyID:        "POL1",
		ComplianceScore: 80,
		Status:          domain.AuditStatusConforme,
		Issues:          []domain.AuditIssue{{Type: "brand", Severity: "low", Description: "logo pequeno"}},
		Recommendations: []string{"aumentar logo"},
		CreatedAt:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), audit))
	assert.Contains(t, q.query, "INSERT INTO audits")
	require.Len(t, q.args, 9)
	assert.JSONEq(t, `[{"type":"brand","severity":"low","description":"logo pequeno"}]`, q.args[6].(string))
}

func TestIntegrationRepository_MarkSynced(t *testing.T) {
	q := &execQueryer{affected: 1}
	repo := NewIntegrationRepository(q)

	at := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkSynced(context.Background(), "I1", at))

	assert.Equal(t, "UPDATE integrations SET last_sync = $1, status = $2 WHERE id = $3", q.query)
	assert.Equal(t, []interface{}{at, domain.IntegrationStatusActive, "I1"}, q.args)
}

func TestSelectBuilders(t *testing.T) {
	query, args, err := selectCreatives().Where("c.id IN ($1,$2)", "C1", "C2").ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM creatives c WHERE c.id IN ($1,$2)")
	assert.Len(t, args, 2)

	query, _, err = selectPolicies().ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "p.brand_guidelines")
	assert.Contains(t, query, "FROM policies p")
}
