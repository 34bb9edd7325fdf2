package auditing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/policying"
)

type ReanalysisState string

const (
	StateIdle                ReanalysisState = "idle"
	StatePolicyChoicePending ReanalysisState = "policy_choice_pending"
	StateDeleting            ReanalysisState = "deleting"
	StateAnalyzing           ReanalysisState = "analyzing"
	StateSucceeded           ReanalysisState = "succeeded"
	StateFailed              ReanalysisState = "failed"
)

// Succeeded e Failed são o Idle ao fim de uma tentativa, com o resultado anotado
var reanalysisTransitions = map[ReanalysisState][]ReanalysisState{
	StateIdle:                {StatePolicyChoicePending},
	StatePolicyChoicePending: {StateDeleting, StateIdle},
	StateDeleting:            {StateAnalyzing, StateFailed},
	StateAnalyzing:           {StateSucceeded, StateFailed},
	StateSucceeded:           {StatePolicyChoicePending},
	StateFailed:              {StatePolicyChoicePending},
}

type PolicyChoice string

const (
	PolicyChoiceSame      PolicyChoice = "same"
	PolicyChoiceDifferent PolicyChoice = "different"
)

// Reanalysis é a máquina de estados de uma substituição de auditoria
type Reanalysis struct {
	CreativeID      string
	CurrentAuditID  string
	CurrentPolicyID string

	state            ReanalysisState
	choice           PolicyChoice
	selectedPolicyID string
}

func NewReanalysis(creativeID, currentAuditID, currentPolicyID string) *Reanalysis {
	return &Reanalysis{
		CreativeID:      creativeID,
		CurrentAuditID:  currentAuditID,
		CurrentPolicyID: currentPolicyID,
		state:           StateIdle,
		choice:          PolicyChoiceSame,
	}
}

func (r *Reanalysis) State() ReanalysisState {
	return r.state
}

// Open abre a escolha de política com "manter a mesma" pré-selecionado
func (r *Reanalysis) Open() error {
	if err := r.transition(StatePolicyChoicePending); err != nil {
		return err
	}
	r.choice = PolicyChoiceSame
	r.selectedPolicyID = ""
	return nil
}

// Cancel fecha a escolha sem chamar nada remoto
func (r *Reanalysis) Cancel() error {
	return r.transition(StateIdle)
}

func (r *Reanalysis) ChoosePolicy(choice PolicyChoice, selectedPolicyID string) error {
	if r.state != StatePolicyChoicePending {
		return fmt.Errorf("%w: escolha de política em %s", ErrIllegalTransition, r.state)
	}

	switch choice {
	case PolicyChoiceSame, PolicyChoiceDifferent:
	default:
		return fmt.Errorf("escolha de política inválida: %q", choice)
	}

	r.choice = choice
	r.selectedPolicyID = selectedPolicyID
	return nil
}

// ResolvedPolicyID é a guarda da confirmação: sem política resolvida não há reprocessamento
func (r *Reanalysis) ResolvedPolicyID() (string, error) {
	if r.choice == PolicyChoiceDifferent {
		if r.selectedPolicyID == "" {
			return "", ErrPolicySelectionRequired
		}
		return r.selectedPolicyID, nil
	}

	if r.CurrentPolicyID == "" {
		return "", ErrPolicySelectionRequired
	}
	return r.CurrentPolicyID, nil
}

func (r *Reanalysis) transition(to ReanalysisState) error {
	if !slices.Contains(reanalysisTransitions[r.state], to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.state, to)
	}
	r.state = to
	return nil
}

// ReanalysisRequest traz o que a tela mostrava. A auditoria atual e a política
// dela são resolvidas de novo no servidor antes de qualquer remoção.
type ReanalysisRequest struct {
	CreativeID       string       `json:"creative_id"`
	CurrentAuditID   string       `json:"current_audit_id"`
	CurrentPolicyID  string       `json:"current_policy_id"`
	Choice           PolicyChoice `json:"policy_choice"`
	SelectedPolicyID string       `json:"selected_policy_id"`
}

type ReanalysisOutcome struct {
	State    ReanalysisState `json:"state"`
	PolicyID string          `json:"policy_id"`
	Audit    *domain.Audit   `json:"audit,omitempty"`
}

// ReanalysisController substitui a auditoria de um criativo: apaga a atual e analisa de novo
type ReanalysisController struct {
	deleter  AuditDeleter
	audits   AuditLister
	policies policying.PolicyLister
	analyzer CreativeAnalyzer
	cache    AuditCache

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewReanalysisController(
	deleter AuditDeleter,
	audits AuditLister,
	policies policying.PolicyLister,
	analyzer CreativeAnalyzer,
	cache AuditCache,
) *ReanalysisController {
	return &ReanalysisController{
		deleter:  deleter,
		audits:   audits,
		policies: policies,
		analyzer: analyzer,
		cache:    cache,
		inflight: make(map[string]struct{}),
	}
}

// Reanalyze percorre a máquina de estados inteira para um pedido confirmado
func (c *ReanalysisController) Reanalyze(ctx context.Context, req ReanalysisRequest) (*ReanalysisOutcome, error) {
	if req.CreativeID == "" {
		return nil, errors.New("creative ID is required")
	}

	flow := NewReanalysis(req.CreativeID, req.CurrentAuditID, req.CurrentPolicyID)
	if err := flow.Open(); err != nil {
		return nil, err
	}

	choice := req.Choice
	if choice == "" {
		choice = PolicyChoiceSame
	}
	if err := flow.ChoosePolicy(choice, req.SelectedPolicyID); err != nil {
		return nil, err
	}

	// "outra política" sem seleção é rejeitada antes de qualquer chamada remota
	if choice == PolicyChoiceDifferent {
		if _, err := flow.ResolvedPolicyID(); err != nil {
			return &ReanalysisOutcome{State: flow.State()}, err
		}
	}

	if !c.acquire(req.CreativeID) {
		return nil, ErrReanalysisInProgress
	}
	defer c.release(req.CreativeID)

	if err := c.resolveCurrent(ctx, flow); err != nil {
		return &ReanalysisOutcome{State: flow.State()}, err
	}

	return c.execute(ctx, flow)
}

// resolveCurrent troca o que veio da tela pela auditoria mais recente do próprio criativo.
// Sem auditoria no servidor, a política informada só vale se passar pela lista global.
func (c *ReanalysisController) resolveCurrent(ctx context.Context, flow *Reanalysis) error {
	audits, err := c.audits.ListByCreative(ctx, flow.CreativeID)
	if err != nil {
		return fmt.Errorf("erro ao buscar auditoria atual do criativo %s: %w", flow.CreativeID, err)
	}

	if len(audits) == 0 {
		if flow.CurrentAuditID != "" {
			logrus.WithFields(logrus.Fields{
				"creative_id": flow.CreativeID,
				"audit_id":    flow.CurrentAuditID,
			}).Info("Auditoria anterior já havia sido removida")
		}
		flow.CurrentAuditID = ""
		return nil
	}

	current := audits[0]
	if flow.CurrentAuditID != "" && flow.CurrentAuditID != current.ID {
		logrus.WithFields(logrus.Fields{
			"creative_id":       flow.CreativeID,
			"requested_audit":   flow.CurrentAuditID,
			"current_audit":     current.ID,
			"current_policy_id": current.PolicyID,
		}).Warn("Auditoria informada não é a atual do criativo, usando a atual")
	}

	flow.CurrentAuditID = current.ID
	flow.CurrentPolicyID = current.PolicyID
	return nil
}

// checkPolicy garante que a política vem da lista global antes de apagar qualquer coisa
func (c *ReanalysisController) checkPolicy(ctx context.Context, policyID string) error {
	policies, err := c.policies.ListPolicies(ctx, domain.PolicyScopeGlobal)
	if err != nil {
		return fmt.Errorf("erro ao listar políticas globais: %w", err)
	}
	if len(policies) == 0 {
		return policying.ErrNoPolicyAvailable
	}

	if !slices.ContainsFunc(policies, func(p *domain.Policy) bool { return p.ID == policyID }) {
		return fmt.Errorf("%w: %s", policying.ErrUnknownPolicy, policyID)
	}
	return nil
}

// execute confirma um fluxo em policy_choice_pending já resolvido contra o servidor
func (c *ReanalysisController) execute(ctx context.Context, flow *Reanalysis) (*ReanalysisOutcome, error) {
	policyID, err := flow.ResolvedPolicyID()
	if err != nil {
		return &ReanalysisOutcome{State: flow.State()}, err
	}

	if err := c.checkPolicy(ctx, policyID); err != nil {
		return &ReanalysisOutcome{State: flow.State()}, err
	}

	if err := flow.transition(StateDeleting); err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{
		"creative_id": flow.CreativeID,
		"audit_id":    flow.CurrentAuditID,
		"policy_id":   policyID,
	})

	if err := c.deletePrevious(ctx, flow); err != nil {
		_ = flow.transition(StateFailed)
		logger.WithError(err).Error("Falha ao remover auditoria anterior, reprocessamento cancelado")
		return &ReanalysisOutcome{State: flow.State(), PolicyID: policyID}, &ReanalysisError{
			Stage:      StageDelete,
			CreativeID: flow.CreativeID,
			Err:        err,
		}
	}

	// a auditoria anterior não existe mais, as telas não podem continuar mostrando
	c.removeFromCache(ctx, flow.CreativeID)

	if err := flow.transition(StateAnalyzing); err != nil {
		return nil, err
	}

	audit, err := c.analyzer.AnalyzeCreative(ctx, flow.CreativeID, &policyID)
	if err == nil && audit == nil {
		err = errors.New("análise não retornou auditoria")
	}
	if err != nil {
		_ = flow.transition(StateFailed)
		logger.WithError(err).Error("Reprocessamento falhou após remover a auditoria, criativo ficou sem auditoria")
		return &ReanalysisOutcome{State: flow.State(), PolicyID: policyID}, &ReanalysisError{
			Stage:      StageAnalyze,
			CreativeID: flow.CreativeID,
			Err:        err,
		}
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, audit); err != nil {
			logger.WithError(err).Warn("Erro ao gravar nova auditoria no cache")
		}
	}

	if err := flow.transition(StateSucceeded); err != nil {
		return nil, err
	}

	logger.WithField("new_audit_id", audit.ID).Info("Criativo reprocessado com sucesso")

	return &ReanalysisOutcome{
		State:    flow.State(),
		PolicyID: policyID,
		Audit:    audit,
	}, nil
}

// deletePrevious trata "já removida" como sucesso: outro processo pode ter limpado antes
func (c *ReanalysisController) deletePrevious(ctx context.Context, flow *Reanalysis) error {
	if flow.CurrentAuditID == "" {
		return nil
	}

	err := c.deleter.DeleteAudit(ctx, flow.CurrentAuditID)
	if errors.Is(err, domain.ErrAuditNotFound) {
		logrus.WithFields(logrus.Fields{
			"creative_id": flow.CreativeID,
			"audit_id":    flow.CurrentAuditID,
		}).Info("Auditoria anterior removida entre a consulta e o delete")
		return nil
	}
	return err
}

func (c *ReanalysisController) removeFromCache(ctx context.Context, creativeID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Remove(ctx, creativeID); err != nil {
		logrus.WithField("creative_id", creativeID).WithError(err).Warn("Erro ao remover auditoria do cache")
	}
}

func (c *ReanalysisController) acquire(creativeID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[creativeID]; busy {
		return false
	}
	c.inflight[creativeID] = struct{}{}
	return true
}

func (c *ReanalysisController) release(creativeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, creativeID)
}
