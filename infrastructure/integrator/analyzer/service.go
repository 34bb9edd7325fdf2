package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/infrastructure/integrator/analyzer/analyzerclient"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/pkg/utils"
)

var (
	ErrCreativeNotFound = errors.New("criativo não encontrado")
	ErrPolicyNotFound   = errors.New("política não encontrada")
	ErrNoDefaultPolicy  = errors.New("nenhuma política padrão cadastrada")
)

// Limites usados quando o motor não devolve um status reconhecido
const (
	conformeThreshold = 80
	parcialThreshold  = 50
)

type CreativeGetter interface {
	GetCreative(ctx context.Context, id string) (*domain.Creative, error)
}

type PolicyGetter interface {
	ListPolicies(ctx context.Context, scope domain.PolicyScope) ([]*domain.Policy, error)
	GetPolicy(ctx context.Context, id string) (*domain.Policy, error)
}

type AuditSaver interface {
	Save(ctx context.Context, audit *domain.Audit) error
}

// Service pontua um criativo no motor externo e persiste a auditoria resultante
type Service struct {
	client    analyzerclient.Client
	creatives CreativeGetter
	policies  PolicyGetter
	audits    AuditSaver
	now       func() time.Time
}

func New(client analyzerclient.Client, creatives CreativeGetter, policies PolicyGetter, audits AuditSaver) *Service {
	return &Service{
		client:    client,
		creatives: creatives,
		policies:  policies,
		audits:    audits,
		now:       time.Now,
	}
}

func (s *Service) AnalyzeCreative(ctx context.Context, creativeID string, policyID *string) (*domain.Audit, error) {
	creative, err := s.creatives.GetCreative(ctx, creativeID)
	if err != nil {
		return nil, err
	}
	if creative == nil {
		return nil, fmt.Errorf("%w: %s", ErrCreativeNotFound, creativeID)
	}

	policy, err := s.policy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Score(ctx, analyzerclient.ScoreRequest{
		Creative: analyzerclient.ScoreCreative{
			ID:           creative.ID,
			Name:         creative.Name,
			Format:       string(creative.Format),
			ThumbnailURL: creative.ThumbnailURL,
			Impressions:  creative.Impressions,
			Clicks:       creative.Clicks,
			Conversions:  creative.Conversions,
			CTR:          creative.CTR(),
		},
		Policy: analyzerclient.ScorePolicy{
			ID:              policy.ID,
			BrandGuidelines: policy.BrandGuidelines,
			MinCTR:          policy.MinCTR,
			MinConversions:  policy.MinConversions,
			MaxFrequency:    policy.MaxFrequency,
		},
	})
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("gerando id da auditoria: %w", err)
	}

	audit := toAudit(id, creative.ID, policy.ID, resp, s.now())

	if err := s.audits.Save(ctx, audit); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"creative_id": creative.ID,
		"policy_id":   policy.ID,
		"audit_id":    audit.ID,
		"status":      audit.Status,
	}).Info("Auditoria criada")

	return audit, nil
}

// policy resolve a política explícita ou, sem ela, a padrão global
func (s *Service) policy(ctx context.Context, policyID *string) (*domain.Policy, error) {
	if policyID != nil && *policyID != "" {
		policy, err := s.policies.GetPolicy(ctx, *policyID)
		if err != nil {
			return nil, err
		}
		if policy == nil {
			return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, *policyID)
		}
		return policy, nil
	}

	policies, err := s.policies.ListPolicies(ctx, domain.PolicyScopeGlobal)
	if err != nil {
		return nil, err
	}

	policy := domain.DefaultPolicy(policies)
	if policy == nil {
		return nil, ErrNoDefaultPolicy
	}
	return policy, nil
}

func toAudit(id, creativeID, policyID string, resp *analyzerclient.ScoreResponse, now time.Time) *domain.Audit {
	audit := &domain.Audit{
		ID:               id,
		CreativeID:       creativeID,
		PolicyID:         policyID,
		ComplianceScore:  utils.ClampScore(resp.ComplianceScore),
		PerformanceScore: utils.ClampScore(resp.PerformanceScore),
		Status:           domain.AuditStatus(resp.Status),
		Issues:           make([]domain.AuditIssue, 0, len(resp.Issues)),
		Recommendations:  resp.Recommendations,
		CreatedAt:        now,
	}

	if !audit.Status.IsValid() {
		audit.Status = statusFromScore(audit.ComplianceScore)
	}

	for _, issue := range resp.Issues {
		audit.Issues = append(audit.Issues, domain.AuditIssue(issue))
	}
	if audit.Recommendations == nil {
		audit.Recommendations = []string{}
	}

	return audit
}

func statusFromScore(score float64) domain.AuditStatus {
	switch {
	case score >= conformeThreshold:
		return domain.AuditStatusConforme
	case score >= parcialThreshold:
		return domain.AuditStatusParcialmenteConforme
	default:
		return domain.AuditStatusNaoConforme
	}
}
