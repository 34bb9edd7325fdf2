package domain

import (
	"errors"
	"time"
)

// ErrAuditNotFound é devolvido quando a auditoria já não existe
var ErrAuditNotFound = errors.New("audit not found")

type AuditStatus string

const (
	AuditStatusConforme             AuditStatus = "conforme"
	AuditStatusParcialmenteConforme AuditStatus = "parcialmente_conforme"
	AuditStatusNaoConforme          AuditStatus = "não_conforme"
)

func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusConforme, AuditStatusParcialmenteConforme, AuditStatusNaoConforme:
		return true
	}
	return false
}

type AuditIssue struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Audit é o veredito de um criativo contra uma política. Tratado como valor imutável:
// quem precisa alterar cria outro.
type Audit struct {
	ID               string       `json:"id"`
	CreativeID       string       `json:"creative_id"`
	PolicyID         string       `json:"policy_id"`
	ComplianceScore  float64      `json:"compliance_score"`
	PerformanceScore float64      `json:"performance_score"`
	Status           AuditStatus  `json:"status"`
	Issues           []AuditIssue `json:"issues"`
	Recommendations  []string     `json:"recommendations"`
	CreatedAt        time.Time    `json:"created_at"`
}
