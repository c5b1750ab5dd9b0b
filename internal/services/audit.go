package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
)

// auditCap bounds the stored trail; oldest records fall off.
const auditCap = 200

// Audit keeps a newest-first trail of mutating wallet actions.
type Audit struct {
	mu sync.Mutex
	s  store.Store
}

func NewAudit(s store.Store) *Audit { return &Audit{s: s} }

func (a *Audit) Record(action string, details map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var list []models.AuditRecord
	a.s.Get(store.KeyAudit, &list)
	list = append([]models.AuditRecord{{
		ID:        uuid.NewString(),
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}}, list...)
	if len(list) > auditCap {
		list = list[:auditCap]
	}
	a.s.Set(store.KeyAudit, list)
}

func (a *Audit) Records() []models.AuditRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	var list []models.AuditRecord
	if !a.s.Get(store.KeyAudit, &list) || list == nil {
		return []models.AuditRecord{}
	}
	return list
}
