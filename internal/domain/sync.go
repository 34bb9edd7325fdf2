package domain

import "fmt"

// SyncCounts é a contagem de entidades persistidas por uma sincronização.
// O mesmo formato aparece no sucesso e na falha.
type SyncCounts struct {
	Campaigns int `json:"campaigns"`
	AdSets    int `json:"adSets"`
	Creatives int `json:"creatives"`
}

func (c SyncCounts) Add(other SyncCounts) SyncCounts {
	return SyncCounts{
		Campaigns: c.Campaigns + other.Campaigns,
		AdSets:    c.AdSets + other.AdSets,
		Creatives: c.Creatives + other.Creatives,
	}
}

// Max devolve, por tipo de entidade, o maior valor entre as duas contagens
func (c SyncCounts) Max(other SyncCounts) SyncCounts {
	return SyncCounts{
		Campaigns: max(c.Campaigns, other.Campaigns),
		AdSets:    max(c.AdSets, other.AdSets),
		Creatives: max(c.Creatives, other.Creatives),
	}
}

func (c SyncCounts) IsZero() bool {
	return c == SyncCounts{}
}

type SyncErrorKind string

const (
	SyncErrorRateLimited  SyncErrorKind = "rate_limited"
	SyncErrorUnauthorized SyncErrorKind = "unauthorized"
	SyncErrorUnknown      SyncErrorKind = "unknown"
)

// SyncError é a falha de uma sincronização, com o que já tinha sido persistido antes dela
type SyncError struct {
	Kind    SyncErrorKind
	Message string
	Counts  SyncCounts
	Err     error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sync %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("sync %s: %s", e.Kind, e.Message)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Resumable indica se "continuar" tem chance de terminar a sincronização.
// Unauthorized exige reconectar a integração.
func (e *SyncError) Resumable() bool {
	return e != nil && e.Kind != SyncErrorUnauthorized
}

// SyncResult é o resultado de syncIntegration. Err nil significa sucesso;
// Counts vale nos dois casos.
type SyncResult struct {
	Counts SyncCounts
	Err    *SyncError
}

func (r SyncResult) Failed() bool {
	return r.Err != nil
}

func SyncSucceeded(counts SyncCounts) SyncResult {
	return SyncResult{Counts: counts}
}

func SyncFailed(kind SyncErrorKind, message string, counts SyncCounts, err error) SyncResult {
	return SyncResult{
		Counts: counts,
		Err: &SyncError{
			Kind:    kind,
			Message: message,
			Counts:  counts,
			Err:     err,
		},
	}
}
