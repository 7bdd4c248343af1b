package cart

import (
	"context"
	"errors"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// ErrVersionConflict is returned by Replace when the stored cart moved past
// the version the caller loaded. The engine maps it onto a retryable conflict.
var ErrVersionConflict = errors.New("cart version conflict")

// Store persists cart aggregates. Implementations must treat a cart and its
// items as one unit: Replace rewrites the whole aggregate or nothing.
//
// Load returns (nil, nil) when the owner has no cart of the given kind.
//
// Replace performs an optimistic version check. The caller mutates the record
// it got from Load (whose Version field holds the loaded version) and Replace
// bumps the version on success. A stale version yields ErrVersionConflict and
// leaves the stored state untouched.
type Store interface {
	Load(ctx context.Context, ownerID int64, kind enums.CartKind) (*models.CartRecord, error)
	Replace(ctx context.Context, record *models.CartRecord) error
}
