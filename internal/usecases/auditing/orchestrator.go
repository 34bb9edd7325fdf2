package auditing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/pkg/utils"
)

// maxRetainedJobs limita quantos snapshots finalizados ficam disponíveis para consulta
const maxRetainedJobs = 100

// Orchestrator analisa criativos em sequência, um por vez, contra uma política.
// A execução é estritamente sequencial para respeitar o limite de taxa das plataformas.
type Orchestrator struct {
	analyzer  CreativeAnalyzer
	cache     AuditCache
	observers []ProgressObserver
	newID     func() (string, error)

	mu       sync.Mutex
	activeID string
	progress map[string]domain.BatchProgress
	finished []string
}

func NewOrchestrator(analyzer CreativeAnalyzer, cache AuditCache, observers ...ProgressObserver) *Orchestrator {
	return &Orchestrator{
		analyzer:  analyzer,
		cache:     cache,
		observers: observers,
		newID:     utils.GenerateID,
		progress:  make(map[string]domain.BatchProgress),
	}
}

// AddObserver registra um observador adicional de progresso
func (o *Orchestrator) AddObserver(observer ProgressObserver) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, observer)
}

// Run executa o lote até o fim e devolve o resumo
func (o *Orchestrator) Run(ctx context.Context, targets []domain.AnalysisTarget, policyID string) (*domain.BatchSummary, error) {
	job, err := o.begin(targets, policyID)
	if err != nil {
		return nil, err
	}

	return o.execute(ctx, job), nil
}

// AnalyzeSingle é um lote de tamanho um, com a mesma máquina de estados
func (o *Orchestrator) AnalyzeSingle(ctx context.Context, target domain.AnalysisTarget, policyID string) (*domain.BatchSummary, error) {
	return o.Run(ctx, []domain.AnalysisTarget{target}, policyID)
}

// Start inicia o lote em background e devolve o ID do job para consulta do progresso
func (o *Orchestrator) Start(ctx context.Context, targets []domain.AnalysisTarget, policyID string) (string, error) {
	job, err := o.begin(targets, policyID)
	if err != nil {
		return "", err
	}

	// o lote sobrevive ao fim da requisição HTTP que o iniciou
	go o.execute(context.WithoutCancel(ctx), job)

	return job.ID, nil
}

// Progress devolve o último snapshot de um job
func (o *Orchestrator) Progress(jobID string) (domain.BatchProgress, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.progress[jobID]
	if !ok {
		return domain.BatchProgress{}, ErrJobNotFound
	}
	return p, nil
}

// ActiveJobID devolve o job em execução, vazio quando não há nenhum
func (o *Orchestrator) ActiveJobID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeID
}

// Dismiss descarta o resultado de um job finalizado
func (o *Orchestrator) Dismiss(jobID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.progress[jobID]
	if !ok {
		return ErrJobNotFound
	}
	if !p.Done {
		return ErrJobRunning
	}

	delete(o.progress, jobID)
	return nil
}

func (o *Orchestrator) begin(targets []domain.AnalysisTarget, policyID string) (*domain.AnalysisJob, error) {
	if len(targets) == 0 {
		return nil, ErrEmptyBatch
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.activeID != "" {
		return nil, fmt.Errorf("%w: %s", ErrBatchInProgress, o.activeID)
	}

	id, err := o.newID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar identificador do lote: %w", err)
	}

	job := domain.NewAnalysisJob(id, policyID, targets)
	o.activeID = id
	o.progress[id] = job.Snapshot(0, "", false)

	logrus.WithFields(logrus.Fields{
		"job_id":    id,
		"policy_id": policyID,
		"total":     job.Total(),
	}).Info("Lote de análise iniciado")

	return job, nil
}

func (o *Orchestrator) execute(ctx context.Context, job *domain.AnalysisJob) *domain.BatchSummary {
	startTime := time.Now()
	policyID := job.PolicyID

	for i, target := range job.Queue {
		name := target.Name
		if name == "" {
			name = target.CreativeID
		}

		o.publish(job.Snapshot(i+1, name, false), false)

		audit, err := o.analyzeSafely(ctx, target.CreativeID, policyID)
		if err == nil && audit == nil {
			err = errors.New("análise não retornou auditoria")
		}

		if err != nil {
			logrus.WithFields(logrus.Fields{
				"job_id":      job.ID,
				"creative_id": target.CreativeID,
				"error":       err.Error(),
			}).Warn("Falha ao analisar criativo, seguindo para o próximo")

			o.record(job, job.RecordFailure(domain.FailedItem{
				CreativeID: target.CreativeID,
				Name:       name,
				Error:      err.Error(),
			}))
		} else {
			o.record(job, job.RecordSuccess())
			o.refreshCache(ctx, audit)
		}

		o.publish(job.Snapshot(i+1, name, false), false)
	}

	final := job.Snapshot(job.Total(), "", true)
	o.publish(final, true)

	logrus.WithFields(logrus.Fields{
		"job_id":    job.ID,
		"succeeded": final.Succeeded,
		"failed":    final.Failed,
		"duration":  time.Since(startTime).String(),
	}).Info("Lote de análise concluído")

	return &domain.BatchSummary{
		JobID:       job.ID,
		Total:       final.Total,
		Succeeded:   final.Succeeded,
		Failed:      final.Failed,
		FailedItems: final.FailedItems,
	}
}

// analyzeSafely transforma panic do motor em falha do item, o lote segue
func (o *Orchestrator) analyzeSafely(ctx context.Context, creativeID, policyID string) (audit *domain.Audit, err error) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("creative_id", creativeID).Errorf("Panic na análise do criativo: %v", r)
			audit, err = nil, fmt.Errorf("panic na análise: %v", r)
		}
	}()

	return o.analyzer.AnalyzeCreative(ctx, creativeID, &policyID)
}

// record só falha se o job receber mais resultados que itens, o que indica erro de programação
func (o *Orchestrator) record(job *domain.AnalysisJob, err error) {
	if err != nil {
		logrus.WithField("job_id", job.ID).WithError(err).Error("Resultado descartado para lote já concluído")
	}
}

func (o *Orchestrator) refreshCache(ctx context.Context, audit *domain.Audit) {
	if o.cache == nil {
		return
	}

	if err := o.cache.Put(ctx, audit); err != nil {
		logrus.WithFields(logrus.Fields{
			"creative_id": audit.CreativeID,
			"error":       err.Error(),
		}).Warn("Erro ao atualizar cache de auditoria")
	}
}

// publish grava o snapshot e notifica os observadores antes de o próximo item começar.
// Em done, a marca de job ativo só é liberada depois que o snapshot final foi entregue,
// então um lote novo não publica antes do fim do anterior.
func (o *Orchestrator) publish(progress domain.BatchProgress, done bool) {
	o.mu.Lock()
	o.progress[progress.JobID] = progress
	observers := o.observers
	o.mu.Unlock()

	for _, observer := range observers {
		observer.OnBatchProgress(progress)
	}

	if done {
		o.mu.Lock()
		o.activeID = ""
		o.retain(progress.JobID)
		o.mu.Unlock()
	}
}

// retain descarta os snapshots finalizados mais antigos. Chamado com o lock.
func (o *Orchestrator) retain(jobID string) {
	o.finished = append(o.finished, jobID)
	for len(o.finished) > maxRetainedJobs {
		delete(o.progress, o.finished[0])
		o.finished = o.finished[1:]
	}
}
