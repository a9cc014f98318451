package services

import (
	"context"

	"github.com/sttnf/project-DDP/pkg/logger"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
	"github.com/sttnf/project-DDP/services/inventory/domain/repositories"
)

// LedgerService owns the append-only transaction log. There is no update or
// delete path: corrections to history do not exist in this domain.
type LedgerService struct {
	store repositories.SnapshotStore
	log   logger.Logger
	txs   []models.Transaction
}

// NewLedgerService returns a LedgerService seeded with the given
// transactions in their recorded order.
func NewLedgerService(store repositories.SnapshotStore, log logger.Logger, seed []models.Transaction) *LedgerService {
	return &LedgerService{store: store, log: log, txs: append([]models.Transaction(nil), seed...)}
}

// Append records a transaction and persists the ledger. Validation is the
// purchase workflow's responsibility; the append itself is unconditional.
// A persistence failure matches domain.ErrPersistence and leaves the
// in-memory append in place.
func (s *LedgerService) Append(ctx context.Context, tx models.Transaction) error {
	s.txs = append(s.txs, tx)
	if err := s.store.SaveLedger(ctx, s.txs); err != nil {
		s.log.WarnContext(ctx, "ledger save failed, in-memory state retained", "error", err)
		return err
	}
	return nil
}

// ListAll returns every transaction in insertion (chronological) order.
func (s *LedgerService) ListAll() []models.Transaction {
	return append([]models.Transaction(nil), s.txs...)
}

// ListByIdentity returns the transactions recorded for the given identity,
// preserving their relative order. A filter, not a re-sort.
func (s *LedgerService) ListByIdentity(identity string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range s.txs {
		if tx.Identity == identity {
			out = append(out, tx)
		}
	}
	return out
}
