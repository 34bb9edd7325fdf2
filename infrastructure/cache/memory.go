package cache

import (
	"context"
	"sync"

	"github.com/vfg2006/creative-audit-api/internal/domain"
)

// MemoryAuditCache guarda a auditoria atual de cada criativo no processo
type MemoryAuditCache struct {
	mu     sync.RWMutex
	audits map[string]domain.Audit
}

func NewMemoryAuditCache() *MemoryAuditCache {
	return &MemoryAuditCache{audits: make(map[string]domain.Audit)}
}

// Get devolve nil quando o criativo não tem auditoria em cache
func (c *MemoryAuditCache) Get(_ context.Context, creativeID string) (*domain.Audit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	audit, ok := c.audits[creativeID]
	if !ok {
		return nil, nil
	}
	return cloneAudit(audit), nil
}

func (c *MemoryAuditCache) Put(_ context.Context, audit *domain.Audit) error {
	if audit == nil || audit.CreativeID == "" {
		return ErrInvalidAudit
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.audits[audit.CreativeID] = *cloneAudit(*audit)
	return nil
}

func (c *MemoryAuditCache) Remove(_ context.Context, creativeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.audits, creativeID)
	return nil
}

// cloneAudit copia as fatias para que quem leu não altere o que está guardado
func cloneAudit(a domain.Audit) *domain.Audit {
	a.Issues = append([]domain.AuditIssue(nil), a.Issues...)
	a.Recommendations = append([]string(nil), a.Recommendations...)
	return &a
}
