package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultCompletedDwell é o tempo que o resumo de uma sessão concluída fica visível
const DefaultCompletedDwell = 2 * time.Second

// syncAllParallelism limita quantas integrações o "sincronizar todas" chama ao mesmo tempo
const syncAllParallelism = 4

type Controller struct {
	syncer       IntegrationSyncer
	integrations IntegrationLister
	invalidator  ViewInvalidator
	observers    []SessionObserver
	dwell        time.Duration
	afterFunc    func(d time.Duration, f func()) func() bool

	mu       sync.Mutex
	sessions map[string]Session
	stops    map[string]func() bool
	bulk     map[string]struct{}
}

func NewController(
	syncer IntegrationSyncer,
	integrations IntegrationLister,
	invalidator ViewInvalidator,
	dwell time.Duration,
	observers ...SessionObserver,
) *Controller {
	return &Controller{
		syncer:       syncer,
		integrations: integrations,
		invalidator:  invalidator,
		observers:    observers,
		dwell:        dwell,
		afterFunc: func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		},
		sessions: make(map[string]Session),
		stops:    make(map[string]func() bool),
		bulk:     make(map[string]struct{}),
	}
}

func (c *Controller) AddObserver(observer SessionObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, observer)
}

// Sync inicia uma nova tentativa e espera o resultado remoto
func (c *Controller) Sync(ctx context.Context, integrationID string) (Session, error) {
	session, err := c.beginSync(integrationID)
	if err != nil {
		return Session{}, err
	}
	return c.run(ctx, session), nil
}

// Continue reemite a sincronização de uma sessão parcial. A operação remota é
// incremental, então não há registro do que já foi sincronizado.
func (c *Controller) Continue(ctx context.Context, integrationID string) (Session, error) {
	session, err := c.beginContinue(integrationID)
	if err != nil {
		return Session{}, err
	}
	return c.run(ctx, session), nil
}

// StartSync é o Sync em background, para chamadas HTTP que acompanham pelo websocket
func (c *Controller) StartSync(ctx context.Context, integrationID string) (Session, error) {
	session, err := c.beginSync(integrationID)
	if err != nil {
		return Session{}, err
	}
	go c.run(context.WithoutCancel(ctx), session)
	return session, nil
}

func (c *Controller) StartContinue(ctx context.Context, integrationID string) (Session, error) {
	session, err := c.beginContinue(integrationID)
	if err != nil {
		return Session{}, err
	}
	go c.run(context.WithoutCancel(ctx), session)
	return session, nil
}

// Close abandona a sessão. Os dados já persistidos ficam, por isso as telas são recarregadas.
func (c *Controller) Close(ctx context.Context, integrationID string) error {
	c.mu.Lock()
	session, ok := c.sessions[integrationID]
	if !ok {
		c.mu.Unlock()
		return ErrSessionNotFound
	}
	if session.Phase.Running() {
		c.mu.Unlock()
		return ErrSessionBusy
	}
	c.drop(integrationID)
	observers := c.observers
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"integration_id": integrationID,
		"phase":          session.Phase,
	}).Info("Sessão de sincronização fechada")

	for _, observer := range observers {
		observer.OnSyncDismissed(integrationID)
	}
	c.invalidate(ctx)
	return nil
}

// Session devolve o último snapshot da integração
func (c *Controller) Session(integrationID string) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.sessions[integrationID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (c *Controller) beginSync(integrationID string) (Session, error) {
	c.mu.Lock()

	if err := c.checkIdle(integrationID); err != nil {
		c.mu.Unlock()
		return Session{}, err
	}

	if current, ok := c.sessions[integrationID]; ok && current.Phase == PhasePartial {
		c.mu.Unlock()
		return Session{}, ErrSessionAwaitingDecision
	}

	// uma sessão concluída ainda em exibição dá lugar à nova tentativa
	c.drop(integrationID)

	session := Session{IntegrationID: integrationID, Attempt: 1}.with(PhaseConnecting)
	c.sessions[integrationID] = session
	observers := c.observers
	c.mu.Unlock()

	notify(observers, session)
	return session, nil
}

func (c *Controller) beginContinue(integrationID string) (Session, error) {
	c.mu.Lock()

	if err := c.checkIdle(integrationID); err != nil {
		c.mu.Unlock()
		return Session{}, err
	}

	current, ok := c.sessions[integrationID]
	if !ok {
		c.mu.Unlock()
		return Session{}, ErrSessionNotFound
	}
	if current.Phase != PhasePartial || !current.Resumable {
		c.mu.Unlock()
		return Session{}, fmt.Errorf("%w: fase %s, erro %s", ErrSessionNotResumable, current.Phase, current.ErrorKind)
	}

	session := current.with(PhaseSyncing)
	session.Attempt++
	session.ErrorKind = ""
	session.ErrorMessage = ""
	session.Resumable = false
	c.sessions[integrationID] = session
	observers := c.observers
	c.mu.Unlock()

	notify(observers, session)
	return session, nil
}

// checkIdle recusa uma integração com chamada remota em andamento. Chamado com o lock.
func (c *Controller) checkIdle(integrationID string) error {
	if current, ok := c.sessions[integrationID]; ok && current.Phase.Running() {
		return ErrSyncInProgress
	}
	if _, ok := c.bulk[integrationID]; ok {
		return ErrSyncInProgress
	}
	return nil
}

func (c *Controller) run(ctx context.Context, session Session) Session {
	logger := logrus.WithFields(logrus.Fields{
		"integration_id": session.IntegrationID,
		"attempt":        session.Attempt,
	})

	if session.Phase == PhaseConnecting {
		session = c.store(session.with(PhaseSyncing))
	}

	startTime := time.Now()
	result := c.syncSafely(ctx, session.IntegrationID)
	settled := c.store(session.settle(result))

	fields := logrus.Fields{
		"phase":     settled.Phase,
		"campaigns": settled.Counts.Campaigns,
		"ad_sets":   settled.Counts.AdSets,
		"creatives": settled.Counts.Creatives,
		"duration":  time.Since(startTime).String(),
	}
	if result.Failed() {
		logger.WithFields(fields).WithError(result.Err).Warn("Sincronização parcial")
	} else {
		logger.WithFields(fields).Info("Sincronização concluída")
		c.scheduleDismiss(settled)
	}

	return settled
}

func (c *Controller) store(session Session) Session {
	c.mu.Lock()
	c.sessions[session.IntegrationID] = session
	observers := c.observers
	c.mu.Unlock()

	notify(observers, session)
	return session
}

func (c *Controller) scheduleDismiss(session Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.sessions[session.IntegrationID]
	if !ok || current.Phase != PhaseCompleted || current.Attempt != session.Attempt {
		return
	}

	c.stops[session.IntegrationID] = c.afterFunc(c.dwell, func() {
		c.dismissCompleted(session.IntegrationID, session.UpdatedAt)
	})
}

// dismissCompleted só descarta a sessão que agendou o timer; uma tentativa nova já a substituiu
func (c *Controller) dismissCompleted(integrationID string, settledAt time.Time) {
	c.mu.Lock()
	current, ok := c.sessions[integrationID]
	if !ok || current.Phase != PhaseCompleted || !current.UpdatedAt.Equal(settledAt) {
		c.mu.Unlock()
		return
	}
	delete(c.sessions, integrationID)
	delete(c.stops, integrationID)
	observers := c.observers
	c.mu.Unlock()

	c.invalidate(context.Background())
	for _, observer := range observers {
		observer.OnSyncDismissed(integrationID)
	}
}

// drop remove a sessão e cancela o descarte agendado. Chamado com o lock.
func (c *Controller) drop(integrationID string) {
	if stop, ok := c.stops[integrationID]; ok {
		stop()
		delete(c.stops, integrationID)
	}
	delete(c.sessions, integrationID)
}

func (c *Controller) invalidate(ctx context.Context) {
	if c.invalidator == nil {
		return
	}
	c.invalidator.Invalidate(ctx, mirroredViews...)
}

func notify(observers []SessionObserver, session Session) {
	for _, observer := range observers {
		observer.OnSyncSession(session)
	}
}

// IntegrationOutcome é o resultado de uma integração dentro do "sincronizar todas"
type IntegrationOutcome struct {
	IntegrationID string               `json:"integration_id"`
	AccountName   string               `json:"account_name"`
	Counts        domain.SyncCounts    `json:"counts"`
	ErrorKind     domain.SyncErrorKind `json:"error_kind,omitempty"`
	ErrorMessage  string               `json:"error_message,omitempty"`
}

func (o IntegrationOutcome) Failed() bool {
	return o.ErrorKind != ""
}

type SyncAllSummary struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Counts    domain.SyncCounts    `json:"counts"`
	Outcomes  []IntegrationOutcome `json:"outcomes"`
}

// SyncAll sincroniza todas as integrações em paralelo. Uma falha nunca cancela as
// outras nem impede o resumo; só os sucessos entram na soma.
func (c *Controller) SyncAll(ctx context.Context) (*SyncAllSummary, error) {
	integrations, err := c.integrations.ListIntegrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações: %w", err)
	}

	startTime := time.Now()
	outcomes := make([]IntegrationOutcome, len(integrations))

	var g errgroup.Group
	g.SetLimit(syncAllParallelism)

	for i, integration := range integrations {
		i, integration := i, integration
		g.Go(func() error {
			outcomes[i] = c.syncOne(ctx, integration)
			return nil
		})
	}
	_ = g.Wait()

	summary := &SyncAllSummary{Total: len(integrations), Outcomes: outcomes}
	for _, outcome := range outcomes {
		if outcome.Failed() {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Counts = summary.Counts.Add(outcome.Counts)
	}

	logrus.WithFields(logrus.Fields{
		"total":     summary.Total,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"campaigns": summary.Counts.Campaigns,
		"ad_sets":   summary.Counts.AdSets,
		"creatives": summary.Counts.Creatives,
		"duration":  time.Since(startTime).String(),
	}).Info("Sincronização de todas as integrações concluída")

	c.invalidate(ctx)

	return summary, nil
}

func (c *Controller) syncOne(ctx context.Context, integration *domain.Integration) (outcome IntegrationOutcome) {
	outcome = IntegrationOutcome{
		IntegrationID: integration.ID,
		AccountName:   integration.AccountName,
	}

	if !c.claim(integration.ID) {
		outcome.ErrorKind = domain.SyncErrorUnknown
		outcome.ErrorMessage = ErrSyncInProgress.Error()
		return outcome
	}
	defer c.release(integration.ID)

	result := c.syncSafely(ctx, integration.ID)
	outcome.Counts = result.Counts
	if result.Failed() {
		outcome.ErrorKind = result.Err.Kind
		outcome.ErrorMessage = result.Err.Message
		logrus.WithFields(logrus.Fields{
			"integration_id": integration.ID,
			"error_kind":     result.Err.Kind,
		}).WithError(result.Err).Warn("Integração falhou no sincronizar todas")
	}
	return outcome
}

// syncSafely converte panic do sincronizador em falha Unknown, que pode ser continuada
func (c *Controller) syncSafely(ctx context.Context, integrationID string) (result domain.SyncResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("integration_id", integrationID).Errorf("Panic na sincronização: %v", r)
			result = domain.SyncFailed(domain.SyncErrorUnknown, fmt.Sprintf("panic: %v", r), domain.SyncCounts{}, nil)
		}
	}()

	return c.syncer.SyncIntegration(ctx, integrationID)
}

func (c *Controller) claim(integrationID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkIdle(integrationID) != nil {
		return false
	}
	c.bulk[integrationID] = struct{}{}
	return true
}

func (c *Controller) release(integrationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bulk, integrationID)
}
