package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// TenderLocks serializes terminal lifecycle operations per tender. Only one
// award or close may run against a tender at a time in this process; the
// conditional status update in storage remains the authoritative guard.
type TenderLocks struct {
	locks sync.Map
}

// NewTenderLocks constructs an empty lock registry.
func NewTenderLocks() *TenderLocks {
	return &TenderLocks{}
}

// Lock acquires the mutex for the tender and returns its release func.
func (l *TenderLocks) Lock(tenderID uuid.UUID) func() {
	v, _ := l.locks.LoadOrStore(tenderID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
