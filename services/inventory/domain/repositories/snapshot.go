package repositories

import (
	"context"

	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// SnapshotStore is the persistence interface for the catalog and ledger.
// The domain layer owns this interface; infrastructure implements it.
//
// Saves are full replacement writes: the given slices become the entire
// persisted contents. There are no incremental or delta writes.
type SnapshotStore interface {
	// Load reads both backing stores. A missing backing file yields empty
	// slices, not an error (first-run bootstrap). Malformed content returns
	// an error matching domain.ErrMalformedStorage.
	Load(ctx context.Context) ([]*models.Product, []models.Transaction, error)

	// SaveCatalog replaces the persisted catalog with the given products,
	// preserving their order.
	SaveCatalog(ctx context.Context, products []*models.Product) error

	// SaveLedger replaces the persisted ledger with the given transactions.
	SaveLedger(ctx context.Context, txs []models.Transaction) error

	// Save replaces both stores. Write failures return an error matching
	// domain.ErrPersistence.
	Save(ctx context.Context, products []*models.Product, txs []models.Transaction) error
}
