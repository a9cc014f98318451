package models

import (
	"testing"
	"time"
)

func TestNewTransaction(t *testing.T) {
	code, _ := NewProductCode("A1")
	product, _ := NewProduct(code, "Widget", 1000, 5)
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

	t.Run("snapshots product fields and computes total", func(t *testing.T) {
		tx, err := NewTransaction(at, "bob", product, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Timestamp != "2025-03-14 09:26:53" {
			t.Fatalf("unexpected timestamp: %q", tx.Timestamp)
		}
		if tx.Identity != "bob" || tx.ProductCode != "A1" || tx.ProductName != "Widget" {
			t.Fatalf("unexpected snapshot: %+v", tx)
		}
		if tx.Quantity != 3 || tx.Total != 3000 {
			t.Fatalf("expected quantity 3 total 3000, got %d/%d", tx.Quantity, tx.Total)
		}
	})

	t.Run("snapshot does not track later product changes", func(t *testing.T) {
		tx, err := NewTransaction(at, "bob", product, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		product.Name = "Renamed"
		product.Price = 9999
		if tx.ProductName != "Widget" || tx.Total != 2000 {
			t.Fatalf("snapshot changed after product mutation: %+v", tx)
		}
		product.Name = "Widget"
		product.Price = 1000
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		if _, err := NewTransaction(at, "bob", product, 0); err == nil {
			t.Fatal("expected error for zero quantity")
		}
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		if _, err := NewTransaction(at, "bob", product, -2); err == nil {
			t.Fatal("expected error for negative quantity")
		}
	})
}
