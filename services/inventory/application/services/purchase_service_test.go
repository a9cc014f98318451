package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sttnf/project-DDP/services/inventory/domain"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

func newTestPurchase(t *testing.T, store *fakeStore) (*PurchaseService, *CatalogService, *LedgerService) {
	t.Helper()
	catalog := NewCatalogService(store, nil, nopLogger(), nil)
	ledger := NewLedgerService(store, nopLogger(), nil)
	purchase := NewPurchaseService(catalog, ledger, nil, nopLogger())
	purchase.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	}
	return purchase, catalog, ledger
}

func TestPurchaseService_Purchase(t *testing.T) {
	t.Run("decrements stock and appends exactly one transaction", func(t *testing.T) {
		store := &fakeStore{}
		purchase, catalog, ledger := newTestPurchase(t, store)
		mustAdd(t, catalog, "A1", "Widget", 1000, 5)

		tx, err := purchase.Purchase(context.Background(), "bob", "A1", 3)
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}

		p, _ := catalog.Get("A1")
		if p.Stock != 2 {
			t.Fatalf("expected stock 2, got %d", p.Stock)
		}

		all := ledger.ListAll()
		if len(all) != 1 {
			t.Fatalf("expected 1 ledger entry, got %d", len(all))
		}
		if tx.ProductCode != "A1" || tx.Quantity != 3 || tx.Total != 3000 || tx.Identity != "bob" {
			t.Fatalf("unexpected transaction: %+v", tx)
		}
		if tx.Timestamp != "2025-03-14 09:26:53" {
			t.Fatalf("unexpected timestamp: %q", tx.Timestamp)
		}
		if all[0] != *tx {
			t.Fatalf("ledger entry differs from returned transaction: %+v vs %+v", all[0], *tx)
		}
	})

	t.Run("unknown product fails with NotFound", func(t *testing.T) {
		purchase, _, ledger := newTestPurchase(t, &fakeStore{})

		_, err := purchase.Purchase(context.Background(), "bob", "ZZ", 1)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(ledger.ListAll()) != 0 {
			t.Fatal("ledger must stay empty after failed purchase")
		}
	})

	t.Run("zero and negative quantities fail with InvalidQuantity", func(t *testing.T) {
		purchase, catalog, _ := newTestPurchase(t, &fakeStore{})
		mustAdd(t, catalog, "A1", "Widget", 1000, 5)

		for _, q := range []int{0, -2} {
			_, err := purchase.Purchase(context.Background(), "bob", "A1", q)
			if !errors.Is(err, domain.ErrInvalidQuantity) {
				t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
			}
		}
		p, _ := catalog.Get("A1")
		if p.Stock != 5 {
			t.Fatalf("stock changed by rejected purchase: %d", p.Stock)
		}
	})

	t.Run("insufficient stock leaves stock and ledger unchanged", func(t *testing.T) {
		purchase, catalog, ledger := newTestPurchase(t, &fakeStore{})
		mustAdd(t, catalog, "A1", "Widget", 1000, 2)

		_, err := purchase.Purchase(context.Background(), "bob", "A1", 10)
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		p, _ := catalog.Get("A1")
		if p.Stock != 2 {
			t.Fatalf("expected stock 2, got %d", p.Stock)
		}
		if len(ledger.ListAll()) != 0 {
			t.Fatalf("expected empty ledger, got %d entries", len(ledger.ListAll()))
		}
	})

	t.Run("buying the whole stock succeeds", func(t *testing.T) {
		purchase, catalog, _ := newTestPurchase(t, &fakeStore{})
		mustAdd(t, catalog, "A1", "Widget", 1000, 5)

		if _, err := purchase.Purchase(context.Background(), "bob", "A1", 5); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		p, _ := catalog.Get("A1")
		if p.Stock != 0 {
			t.Fatalf("expected stock 0, got %d", p.Stock)
		}
	})

	t.Run("price change after a purchase does not rewrite history", func(t *testing.T) {
		purchase, catalog, ledger := newTestPurchase(t, &fakeStore{})
		mustAdd(t, catalog, "A1", "Widget", 1000, 10)
		ctx := context.Background()

		if _, err := purchase.Purchase(ctx, "bob", "A1", 2); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if _, err := catalog.Update(ctx, "A1", UpdateProductInput{Price: ptr(1200)}); err != nil {
			t.Fatalf("update: %v", err)
		}
		tx, err := purchase.Purchase(ctx, "bob", "A1", 2)
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}

		all := ledger.ListAll()
		if all[0].Total != 2000 {
			t.Fatalf("old transaction rewritten: %+v", all[0])
		}
		if tx.Total != 2400 {
			t.Fatalf("new transaction must use the updated price: %+v", tx)
		}
	})

	t.Run("rename after a purchase keeps the name snapshot", func(t *testing.T) {
		purchase, catalog, ledger := newTestPurchase(t, &fakeStore{})
		mustAdd(t, catalog, "A1", "Widget", 1000, 10)
		ctx := context.Background()

		if _, err := purchase.Purchase(ctx, "bob", "A1", 1); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if _, err := catalog.Update(ctx, "A1", UpdateProductInput{Name: ptr("Gadget")}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := catalog.Delete(ctx, "A1"); err != nil {
			t.Fatalf("delete: %v", err)
		}

		if got := ledger.ListAll()[0].ProductName; got != "Widget" {
			t.Fatalf("expected snapshot name Widget, got %q", got)
		}
	})

	t.Run("persistence failure keeps the in-memory purchase", func(t *testing.T) {
		store := &fakeStore{failCatalog: true, failLedger: true}
		// seed through the constructor: Add would also hit the failing store
		code, _ := models.NewProductCode("A1")
		prod, _ := models.NewProduct(code, "Widget", 1000, 5)
		catalog := NewCatalogService(store, nil, nopLogger(), []*models.Product{prod})
		ledger := NewLedgerService(store, nopLogger(), nil)
		purchase := NewPurchaseService(catalog, ledger, nil, nopLogger())

		tx, err := purchase.Purchase(context.Background(), "bob", "A1", 3)
		if !errors.Is(err, domain.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
		if tx == nil {
			t.Fatal("expected the recorded transaction despite the save failure")
		}
		p, _ := catalog.Get("A1")
		if p.Stock != 2 {
			t.Fatalf("expected stock 2 in memory, got %d", p.Stock)
		}
		if len(ledger.ListAll()) != 1 {
			t.Fatalf("expected 1 in-memory ledger entry, got %d", len(ledger.ListAll()))
		}
	})
}
