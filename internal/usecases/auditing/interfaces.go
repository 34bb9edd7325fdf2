//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package auditing

import (
	"context"

	"github.com/vfg2006/creative-audit-api/internal/domain"
)

// CreativeAnalyzer é a operação remota analyzeCreative. policyID nil deixa o motor
// escolher a política padrão.
type CreativeAnalyzer interface {
	AnalyzeCreative(ctx context.Context, creativeID string, policyID *string) (*domain.Audit, error)
}

// AuditDeleter é a operação remota deleteAudit. Uma auditoria inexistente
// devolve domain.ErrAuditNotFound.
type AuditDeleter interface {
	DeleteAudit(ctx context.Context, auditID string) error
}

// AuditLister é a operação remota listAudits, mais recente primeiro
type AuditLister interface {
	ListByCreative(ctx context.Context, creativeID string) ([]*domain.Audit, error)
}

// AuditCache é o cache criativo -> auditoria lido pelas telas. Toda escrita
// substitui o objeto inteiro.
type AuditCache interface {
	Get(ctx context.Context, creativeID string) (*domain.Audit, error)
	Put(ctx context.Context, audit *domain.Audit) error
	Remove(ctx context.Context, creativeID string) error
}

// CreativeFinder resolve os criativos que entram num lote
type CreativeFinder interface {
	GetCreativesByIDs(ctx context.Context, ids []string) ([]*domain.Creative, error)
	ListCreatives(ctx context.Context) ([]*domain.Creative, error)
}

// ProgressObserver recebe cada snapshot de um lote, na ordem em que foram produzidos
type ProgressObserver interface {
	OnBatchProgress(progress domain.BatchProgress)
}
