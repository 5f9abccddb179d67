package services

import (
	"sync"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

// Session holds the per-session snapshot of each document. Snapshots
// are stale copies: the remote store is the only authoritative state,
// and a snapshot is refreshed only after a successful load or write.
// Passing the same Session to every service gives the calling surface
// one coherent view without ambient globals.
type Session struct {
	mu        sync.RWMutex
	checklist *domain.ChecklistDocument
	orders    *domain.WorkOrderDocument
	completed *domain.CompletedOrderDocument
	changeLog *domain.ChangeLogDocument
}

// NewSession creates an empty session. Snapshots populate on first use.
func NewSession() *Session {
	return &Session{}
}

// Checklist returns the last-seen checklist snapshot, or false when no
// load or write has populated it yet.
func (s *Session) Checklist() (*domain.ChecklistDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checklist, s.checklist != nil
}

// WorkOrders returns the last-seen work order snapshot.
func (s *Session) WorkOrders() (*domain.WorkOrderDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders, s.orders != nil
}

// CompletedOrders returns the last-seen completed order snapshot.
func (s *Session) CompletedOrders() (*domain.CompletedOrderDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed, s.completed != nil
}

// ChangeLog returns the last-seen change log snapshot.
func (s *Session) ChangeLog() (*domain.ChangeLogDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changeLog, s.changeLog != nil
}

func (s *Session) setChecklist(doc *domain.ChecklistDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checklist = doc
}

func (s *Session) setWorkOrders(doc *domain.WorkOrderDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = doc
}

func (s *Session) setCompletedOrders(doc *domain.CompletedOrderDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = doc
}

func (s *Session) setChangeLog(doc *domain.ChangeLogDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeLog = doc
}
