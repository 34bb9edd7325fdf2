package domain

import (
	"errors"
	"slices"
)

// ErrJobExhausted indica uma tentativa de registrar mais resultados do que itens na fila
var ErrJobExhausted = errors.New("analysis job queue already exhausted")

// AnalysisTarget é um item da fila de análise
type AnalysisTarget struct {
	CreativeID string `json:"creative_id"`
	Name       string `json:"name"`
}

type FailedItem struct {
	CreativeID string `json:"creative_id"`
	Name       string `json:"name"`
	Error      string `json:"error"`
}

// AnalysisJob é uma execução do orquestrador: fila ordenada, política e contagem
type AnalysisJob struct {
	ID        string
	PolicyID  string
	Queue     []AnalysisTarget
	succeeded int
	failed    []FailedItem
}

func NewAnalysisJob(id, policyID string, queue []AnalysisTarget) *AnalysisJob {
	return &AnalysisJob{
		ID:       id,
		PolicyID: policyID,
		Queue:    slices.Clone(queue),
	}
}

func (j *AnalysisJob) Total() int {
	return len(j.Queue)
}

func (j *AnalysisJob) Completed() int {
	return j.succeeded + len(j.failed)
}

func (j *AnalysisJob) Succeeded() int {
	return j.succeeded
}

func (j *AnalysisJob) Failed() int {
	return len(j.failed)
}

func (j *AnalysisJob) Exhausted() bool {
	return j.Completed() >= j.Total()
}

func (j *AnalysisJob) RecordSuccess() error {
	if j.Exhausted() {
		return ErrJobExhausted
	}
	j.succeeded++
	return nil
}

func (j *AnalysisJob) RecordFailure(item FailedItem) error {
	if j.Exhausted() {
		return ErrJobExhausted
	}
	j.failed = append(j.failed, item)
	return nil
}

// Snapshot monta o estado atual do job. FailedItems é sempre uma cópia.
func (j *AnalysisJob) Snapshot(current int, currentItemName string, done bool) BatchProgress {
	return BatchProgress{
		JobID:           j.ID,
		PolicyID:        j.PolicyID,
		Current:         current,
		Total:           j.Total(),
		CurrentItemName: currentItemName,
		Succeeded:       j.succeeded,
		Failed:          len(j.failed),
		FailedItems:     slices.Clone(j.failed),
		Done:            done,
	}
}

// BatchProgress é o snapshot publicado para a camada de apresentação.
// É substituído por inteiro a cada atualização, nunca alterado.
type BatchProgress struct {
	JobID           string       `json:"job_id"`
	PolicyID        string       `json:"policy_id"`
	Current         int          `json:"current"`
	Total           int          `json:"total"`
	CurrentItemName string       `json:"current_item_name"`
	Succeeded       int          `json:"succeeded"`
	Failed          int          `json:"failed"`
	FailedItems     []FailedItem `json:"failed_items"`
	Done            bool         `json:"done"`
}

func (p BatchProgress) Completed() int {
	return p.Succeeded + p.Failed
}

// BatchSummary é o resumo emitido quando a fila termina
type BatchSummary struct {
	JobID       string       `json:"job_id"`
	Total       int          `json:"total"`
	Succeeded   int          `json:"succeeded"`
	Failed      int          `json:"failed"`
	FailedItems []FailedItem `json:"failed_items"`
}
