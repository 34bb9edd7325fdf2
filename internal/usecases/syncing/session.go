package syncing

import (
	"time"

	"github.com/vfg2006/creative-audit-api/internal/domain"
)

type Phase string

const (
	PhaseConnecting Phase = "connecting"
	PhaseSyncing    Phase = "syncing"
	PhasePartial    Phase = "partial"
	PhaseCompleted  Phase = "completed"
)

// Running indica uma chamada remota em andamento para a integração
func (p Phase) Running() bool {
	return p == PhaseConnecting || p == PhaseSyncing
}

type View string

const (
	ViewCampaigns    View = "campaigns"
	ViewAdSets       View = "ad_sets"
	ViewCreatives    View = "creatives"
	ViewIntegrations View = "integrations"
)

// mirroredViews são as telas alimentadas pela sincronização
var mirroredViews = []View{ViewCampaigns, ViewAdSets, ViewCreatives, ViewIntegrations}

// Session é o snapshot publicado de uma sincronização. Cada mudança gera um valor novo.
type Session struct {
	IntegrationID string               `json:"integration_id"`
	Phase         Phase                `json:"phase"`
	Counts        domain.SyncCounts    `json:"counts"`
	ErrorKind     domain.SyncErrorKind `json:"error_kind,omitempty"`
	ErrorMessage  string               `json:"error_message,omitempty"`
	Resumable     bool                 `json:"resumable"`
	Attempt       int                  `json:"attempt"`
	Dismissible   bool                 `json:"dismissible"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (s Session) with(phase Phase) Session {
	s.Phase = phase
	s.Dismissible = !phase.Running()
	s.UpdatedAt = time.Now()
	return s
}

// settle aplica o resultado remoto. Os números exibidos nunca regridem dentro da sessão.
func (s Session) settle(result domain.SyncResult) Session {
	s.Counts = s.Counts.Max(result.Counts)

	if result.Failed() {
		next := s.with(PhasePartial)
		next.ErrorKind = result.Err.Kind
		next.ErrorMessage = result.Err.Message
		next.Resumable = result.Err.Resumable()
		return next
	}

	next := s.with(PhaseCompleted)
	next.ErrorKind = ""
	next.ErrorMessage = ""
	next.Resumable = false
	return next
}
