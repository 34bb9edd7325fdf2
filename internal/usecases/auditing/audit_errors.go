package auditing

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBatch      = errors.New("batch has no creatives")
	ErrBatchInProgress = errors.New("another batch is already running")
	ErrJobNotFound     = errors.New("analysis job not found")
	ErrJobRunning      = errors.New("analysis job still running")

	ErrPolicySelectionRequired = errors.New("a different policy was requested but none was selected")
	ErrIllegalTransition       = errors.New("illegal reanalysis transition")
	ErrReanalysisInProgress    = errors.New("creative is already being reanalysed")
	ErrReanalysisDeleteFailed  = errors.New("could not remove previous audit")
	ErrReprocessingFailed      = errors.New("reprocessing failed")
)

type ReanalysisStage string

const (
	StageDelete  ReanalysisStage = "delete"
	StageAnalyze ReanalysisStage = "analyze"
)

// ReanalysisError descreve onde o reprocessamento parou. Em StageDelete nada foi
// alterado; em StageAnalyze a auditoria anterior já foi removida e o criativo ficou sem auditoria.
type ReanalysisError struct {
	Stage      ReanalysisStage
	CreativeID string
	Err        error
}

func (e *ReanalysisError) Error() string {
	if e.Stage == StageDelete {
		return fmt.Sprintf("reprocessamento do criativo %s cancelado, nenhuma alteração feita: %v", e.CreativeID, e.Err)
	}
	return fmt.Sprintf("reprocessamento do criativo %s falhou, criativo ficou sem auditoria: %v", e.CreativeID, e.Err)
}

func (e *ReanalysisError) Unwrap() error {
	return e.Err
}

func (e *ReanalysisError) Is(target error) bool {
	switch target {
	case ErrReanalysisDeleteFailed:
		return e.Stage == StageDelete
	case ErrReprocessingFailed:
		return e.Stage == StageAnalyze
	}
	return false
}

// AuditLeftMissing indica o estado intermediário: auditoria removida sem substituta
func (e *ReanalysisError) AuditLeftMissing() bool {
	return e.Stage == StageAnalyze
}
