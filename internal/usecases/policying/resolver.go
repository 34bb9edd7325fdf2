package policying

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
)

type AnalysisIntent string

const (
	IntentSingle   AnalysisIntent = "single"
	IntentSelected AnalysisIntent = "selected"
	IntentAll      AnalysisIntent = "all"
)

type ResolveRequest struct {
	Intent      AnalysisIntent `json:"intent"`
	CreativeIDs []string       `json:"creative_ids"`
}

func (r ResolveRequest) Validate() error {
	switch r.Intent {
	case IntentSingle:
		if len(r.CreativeIDs) != 1 {
			return fmt.Errorf("%w: single exige exatamente um criativo, recebeu %d", ErrInvalidIntent, len(r.CreativeIDs))
		}
	case IntentSelected:
		if len(r.CreativeIDs) == 0 {
			return fmt.Errorf("%w: selected exige ao menos um criativo", ErrInvalidIntent)
		}
	case IntentAll:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidIntent, r.Intent)
	}
	return nil
}

// PolicyChooser é a decisão apresentada ao operador. Nunca é resolvida sozinha:
// mesmo com uma política padrão, o operador confirma qual será usada.
type PolicyChooser struct {
	Policies        []*domain.Policy `json:"policies"`
	DefaultPolicyID string           `json:"default_policy_id,omitempty"`
	Intent          AnalysisIntent   `json:"intent"`
	CreativeIDs     []string         `json:"creative_ids"`
}

// Resolution carrega o que o orquestrador precisa para retomar o fluxo após a confirmação
type Resolution struct {
	PolicyID    string
	Intent      AnalysisIntent
	CreativeIDs []string
}

// Confirm fecha a decisão com a política escolhida
func (c *PolicyChooser) Confirm(policyID string) (*Resolution, error) {
	if policyID == "" {
		return nil, ErrPolicySelectionRequired
	}

	if domain.FindPolicy(c.Policies, policyID) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policyID)
	}

	return &Resolution{
		PolicyID:    policyID,
		Intent:      c.Intent,
		CreativeIDs: slices.Clone(c.CreativeIDs),
	}, nil
}

type Resolver struct {
	policies PolicyLister
}

func NewResolver(policies PolicyLister) *Resolver {
	return &Resolver{policies: policies}
}

// Prepare monta o seletor de política para uma intenção de análise
func (r *Resolver) Prepare(ctx context.Context, req ResolveRequest) (*PolicyChooser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	policies, err := r.policies.ListPolicies(ctx, domain.PolicyScopeGlobal)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar políticas globais: %w", err)
	}

	if len(policies) == 0 {
		logrus.WithField("intent", req.Intent).Warn("Nenhuma política global cadastrada, análise bloqueada")
		return nil, ErrNoPolicyAvailable
	}

	chooser := &PolicyChooser{
		Policies:    policies,
		Intent:      req.Intent,
		CreativeIDs: slices.Clone(req.CreativeIDs),
	}

	if def := domain.DefaultPolicy(policies); def != nil {
		chooser.DefaultPolicyID = def.ID
	}

	return chooser, nil
}
