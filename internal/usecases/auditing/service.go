package auditing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
)

type Service interface {
	PreparePolicy(ctx context.Context, req policying.ResolveRequest) (*policying.PolicyChooser, error)
	StartAnalysis(ctx context.Context, req StartRequest) (string, error)
	Progress(jobID string) (domain.BatchProgress, error)
	ActiveJobID() string
	Dismiss(jobID string) error
	Reanalyze(ctx context.Context, req ReanalysisRequest) (*ReanalysisOutcome, error)
	ListAudits(ctx context.Context, creativeID string) ([]*domain.Audit, error)
	CurrentAudit(ctx context.Context, creativeID string) (*domain.Audit, error)
}

// StartRequest é a intenção de análise já com a política confirmada pelo operador
type StartRequest struct {
	Intent      policying.AnalysisIntent `json:"intent"`
	CreativeIDs []string                 `json:"creative_ids"`
	PolicyID    string                   `json:"policy_id"`
}

type service struct {
	resolver     *policying.Resolver
	creatives    CreativeFinder
	audits       AuditLister
	cache        AuditCache
	orchestrator *Orchestrator
	reanalysis   *ReanalysisController
}

func NewService(
	resolver *policying.Resolver,
	creatives CreativeFinder,
	audits AuditLister,
	cache AuditCache,
	orchestrator *Orchestrator,
	reanalysis *ReanalysisController,
) Service {
	return &service{
		resolver:     resolver,
		creatives:    creatives,
		audits:       audits,
		cache:        cache,
		orchestrator: orchestrator,
		reanalysis:   reanalysis,
	}
}

func (s *service) PreparePolicy(ctx context.Context, req policying.ResolveRequest) (*policying.PolicyChooser, error) {
	return s.resolver.Prepare(ctx, req)
}

// StartAnalysis revalida a política contra a lista atual e inicia o lote em background
func (s *service) StartAnalysis(ctx context.Context, req StartRequest) (string, error) {
	chooser, err := s.resolver.Prepare(ctx, policying.ResolveRequest{
		Intent:      req.Intent,
		CreativeIDs: req.CreativeIDs,
	})
	if err != nil {
		return "", err
	}

	resolution, err := chooser.Confirm(req.PolicyID)
	if err != nil {
		return "", err
	}

	targets, err := s.targets(ctx, resolution)
	if err != nil {
		return "", err
	}

	jobID, err := s.orchestrator.Start(ctx, targets, resolution.PolicyID)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"job_id":    jobID,
		"intent":    resolution.Intent,
		"policy_id": resolution.PolicyID,
	}).Info("Análise iniciada")

	return jobID, nil
}

// targets monta a fila na ordem pedida. Criativo não encontrado entra com o próprio ID
// como nome e falha no motor, sem abortar o lote.
func (s *service) targets(ctx context.Context, resolution *policying.Resolution) ([]domain.AnalysisTarget, error) {
	if resolution.Intent == policying.IntentAll {
		creatives, err := s.creatives.ListCreatives(ctx)
		if err != nil {
			return nil, fmt.Errorf("erro ao listar criativos: %w", err)
		}

		targets := make([]domain.AnalysisTarget, 0, len(creatives))
		for _, c := range creatives {
			targets = append(targets, domain.AnalysisTarget{CreativeID: c.ID, Name: c.DisplayName()})
		}
		return targets, nil
	}

	creatives, err := s.creatives.GetCreativesByIDs(ctx, resolution.CreativeIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar criativos: %w", err)
	}

	byID := make(map[string]*domain.Creative, len(creatives))
	for _, c := range creatives {
		byID[c.ID] = c
	}

	targets := make([]domain.AnalysisTarget, 0, len(resolution.CreativeIDs))
	for _, id := range resolution.CreativeIDs {
		name := id
		if c, ok := byID[id]; ok {
			name = c.DisplayName()
		}
		targets = append(targets, domain.AnalysisTarget{CreativeID: id, Name: name})
	}
	return targets, nil
}

func (s *service) Progress(jobID string) (domain.BatchProgress, error) {
	return s.orchestrator.Progress(jobID)
}

func (s *service) ActiveJobID() string {
	return s.orchestrator.ActiveJobID()
}

func (s *service) Dismiss(jobID string) error {
	return s.orchestrator.Dismiss(jobID)
}

func (s *service) Reanalyze(ctx context.Context, req ReanalysisRequest) (*ReanalysisOutcome, error) {
	return s.reanalysis.Reanalyze(ctx, req)
}

func (s *service) ListAudits(ctx context.Context, creativeID string) ([]*domain.Audit, error) {
	return s.audits.ListByCreative(ctx, creativeID)
}

// CurrentAudit lê do cache, que recebe o resultado assim que a análise termina.
// Na falta, consulta a auditoria mais recente e repovoa o cache.
func (s *service) CurrentAudit(ctx context.Context, creativeID string) (*domain.Audit, error) {
	if s.cache != nil {
		audit, err := s.cache.Get(ctx, creativeID)
		if err != nil {
			logrus.WithField("creative_id", creativeID).WithError(err).Warn("Erro ao ler auditoria do cache")
		} else if audit != nil {
			return audit, nil
		}
	}

	audits, err := s.audits.ListByCreative(ctx, creativeID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar auditoria atual: %w", err)
	}
	if len(audits) == 0 {
		return nil, domain.ErrAuditNotFound
	}

	current := audits[0]
	if s.cache != nil {
		if err := s.cache.Put(ctx, current); err != nil {
			logrus.WithField("creative_id", creativeID).WithError(err).Warn("Erro ao repovoar cache de auditoria")
		}
	}
	return current, nil
}
