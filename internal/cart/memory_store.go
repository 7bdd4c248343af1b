package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// MemoryStore keeps cart aggregates in process memory. It backs tests and
// single-instance deployments that run without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	carts  map[string]*models.CartRecord
	nextID int64
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*models.CartRecord)}
}

func memoryKey(ownerID int64, kind enums.CartKind) string {
	return fmt.Sprintf("%d/%s", ownerID, kind)
}

// Load returns a deep copy so callers can mutate freely before Replace.
func (s *MemoryStore) Load(_ context.Context, ownerID int64, kind enums.CartKind) (*models.CartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.carts[memoryKey(ownerID, kind)]
	if !ok {
		return nil, nil
	}
	return cloneRecord(record), nil
}

// Replace stores a deep copy of record after the version check passes.
func (s *MemoryStore) Replace(_ context.Context, record *models.CartRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey(record.OwnerID, record.Kind)
	stored, exists := s.carts[key]

	if exists {
		if stored.Version != record.Version {
			return ErrVersionConflict
		}
	} else if record.Version != 0 {
		return ErrVersionConflict
	}

	next := cloneRecord(record)
	next.Version = record.Version + 1
	if next.ID == 0 {
		s.nextID++
		next.ID = s.nextID
	}
	now := time.Now().UTC()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	for i := range next.Items {
		next.Items[i].CartID = next.ID
		if next.Items[i].AddedAt.IsZero() {
			next.Items[i].AddedAt = now
		}
	}
	s.carts[key] = next

	record.ID = next.ID
	record.Version = next.Version
	record.CreatedAt = next.CreatedAt
	record.UpdatedAt = next.UpdatedAt
	return nil
}

func cloneRecord(record *models.CartRecord) *models.CartRecord {
	clone := *record
	clone.Items = make([]models.CartItem, len(record.Items))
	copy(clone.Items, record.Items)
	return &clone
}
