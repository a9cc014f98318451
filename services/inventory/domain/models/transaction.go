package models

import (
	"fmt"
	"time"
)

// TimestampLayout is the stored form of a transaction timestamp,
// second resolution in local time.
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction is one immutable entry in the purchase ledger. ProductName and
// Total are snapshots taken at sale time: later renames, price changes or
// deletes never alter a recorded transaction.
type Transaction struct {
	Timestamp   string
	Identity    string
	ProductCode string
	ProductName string
	Quantity    int
	Total       int
}

// NewTransaction snapshots a purchase of the given product. Quantity must be
// positive; total is quantity times the product's price at this moment.
func NewTransaction(at time.Time, identity string, product *Product, quantity int) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	return Transaction{
		Timestamp:   at.Format(TimestampLayout),
		Identity:    identity,
		ProductCode: product.Code.String(),
		ProductName: product.Name,
		Quantity:    quantity,
		Total:       quantity * product.Price,
	}, nil
}
