package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sttnf/project-DDP/pkg/config"
	"github.com/sttnf/project-DDP/pkg/logger"
	"github.com/sttnf/project-DDP/services/inventory/domain"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// fakeStore is an in-memory SnapshotStore. Saves are recorded so tests can
// assert on write-through behavior, and either side can be made to fail.
type fakeStore struct {
	catalog []*models.Product
	ledger  []models.Transaction

	catalogSaves int
	ledgerSaves  int

	failCatalog bool
	failLedger  bool
}

func (f *fakeStore) Load(context.Context) ([]*models.Product, []models.Transaction, error) {
	return f.catalog, f.ledger, nil
}

func (f *fakeStore) SaveCatalog(_ context.Context, products []*models.Product) error {
	if f.failCatalog {
		return fmt.Errorf("%w: disk full", domain.ErrPersistence)
	}
	f.catalog = append([]*models.Product(nil), products...)
	f.catalogSaves++
	return nil
}

func (f *fakeStore) SaveLedger(_ context.Context, txs []models.Transaction) error {
	if f.failLedger {
		return fmt.Errorf("%w: disk full", domain.ErrPersistence)
	}
	f.ledger = append([]models.Transaction(nil), txs...)
	f.ledgerSaves++
	return nil
}

func (f *fakeStore) Save(ctx context.Context, products []*models.Product, txs []models.Transaction) error {
	if err := f.SaveCatalog(ctx, products); err != nil {
		return err
	}
	return f.SaveLedger(ctx, txs)
}

func nopLogger() logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "error"}, io.Discard)
}

func newTestCatalog(t *testing.T, store *fakeStore) *CatalogService {
	t.Helper()
	return NewCatalogService(store, nil, nopLogger(), nil)
}

func mustAdd(t *testing.T, catalog *CatalogService, code, name string, price, stock int) *models.Product {
	t.Helper()
	p, err := catalog.Add(context.Background(), AddProductInput{Code: code, Name: name, Price: price, Stock: stock})
	if err != nil {
		t.Fatalf("add %s: %v", code, err)
	}
	return p
}

func ptr[T any](v T) *T { return &v }
