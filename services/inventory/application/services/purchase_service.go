package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgevents "github.com/sttnf/project-DDP/pkg/events"
	"github.com/sttnf/project-DDP/pkg/logger"
	"github.com/sttnf/project-DDP/services/inventory/domain"
	domainevents "github.com/sttnf/project-DDP/services/inventory/domain/events"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// PurchaseService couples a stock decrement to a ledger append as one
// logical operation. It holds no state of its own; it borrows the catalog
// and ledger for the duration of each call.
type PurchaseService struct {
	catalog *CatalogService
	ledger  *LedgerService
	bus     *pkgevents.EventBus
	log     logger.Logger
	now     func() time.Time
}

// NewPurchaseService wires the workflow. The bus may be nil.
func NewPurchaseService(catalog *CatalogService, ledger *LedgerService, bus *pkgevents.EventBus, log logger.Logger) *PurchaseService {
	return &PurchaseService{catalog: catalog, ledger: ledger, bus: bus, log: log, now: time.Now}
}

// Purchase records one purchase: resolve the product, validate the
// quantity against stock, capture price and name at this moment, decrement
// stock through the catalog's adjustment path, append the transaction, and
// persist both stores.
//
// All validation happens before any mutation, so a failed purchase changes
// nothing. Once validation passes, the decrement and the append cannot fail
// in memory; only persistence can. A persistence failure is returned
// wrapped in domain.ErrPersistence alongside the recorded transaction:
// the in-memory purchase stands, and on-disk state lags until the next
// successful save.
func (s *PurchaseService) Purchase(ctx context.Context, identity, code string, quantity int) (*models.Transaction, error) {
	p, err := s.catalog.Get(code)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidQuantity, quantity)
	}
	if quantity > p.Stock {
		return nil, fmt.Errorf("%w: stock %d, requested %d", domain.ErrInsufficientStock, p.Stock, quantity)
	}

	// Snapshot name, price and total before the decrement.
	tx, err := models.NewTransaction(s.now(), identity, p, quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidQuantity, err)
	}

	var persistErrs []error
	if _, err := s.catalog.AdjustStock(ctx, code, -quantity); err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			// unreachable once the checks above pass; surface loudly if it ever isn't
			return nil, fmt.Errorf("adjust stock: %w", err)
		}
		persistErrs = append(persistErrs, err)
	}
	if err := s.ledger.Append(ctx, tx); err != nil {
		persistErrs = append(persistErrs, err)
	}

	publishEvent(ctx, s.bus, s.log, domainevents.TopicPurchaseRecorded, domainevents.PurchaseRecordedEvent{
		EventID:     uuid.New(),
		Version:     eventSchemaVersion,
		Identity:    tx.Identity,
		ProductCode: tx.ProductCode,
		ProductName: tx.ProductName,
		Quantity:    tx.Quantity,
		Total:       tx.Total,
		OccurredAt:  time.Now().UTC(),
	})

	if len(persistErrs) > 0 {
		return &tx, errors.Join(persistErrs...)
	}
	return &tx, nil
}
