//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package policying

import (
	"context"

	"github.com/vfg2006/creative-audit-api/internal/domain"
)

// PolicyLister é a operação remota listPolicies
type PolicyLister interface {
	ListPolicies(ctx context.Context, scope domain.PolicyScope) ([]*domain.Policy, error)
}
