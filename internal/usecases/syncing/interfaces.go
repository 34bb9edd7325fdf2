//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package syncing

import (
	"context"

	"github.com/vfg2006/creative-audit-api/internal/domain"
)

// IntegrationSyncer é a operação remota syncIntegration. Nunca devolve erro Go:
// a falha vem em SyncResult.Err junto com o que já foi persistido.
type IntegrationSyncer interface {
	SyncIntegration(ctx context.Context, integrationID string) domain.SyncResult
}

type IntegrationLister interface {
	ListIntegrations(ctx context.Context) ([]*domain.Integration, error)
}

// ViewInvalidator avisa as telas que os dados espelhados mudaram
type ViewInvalidator interface {
	Invalidate(ctx context.Context, views ...View)
}

// SessionObserver recebe cada snapshot de sessão e o descarte de sessões concluídas
type SessionObserver interface {
	OnSyncSession(session Session)
	OnSyncDismissed(integrationID string)
}
