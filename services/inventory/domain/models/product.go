package models

import "fmt"

// Product is the catalog aggregate. Code is the catalog key and never
// changes once the product exists; Price and Stock are minor-unit and
// quantity integers that must stay non-negative at all times.
type Product struct {
	Code  ProductCode
	Name  string
	Price int
	Stock int
}

// NewProduct constructs a valid Product or returns an error when price or
// stock would violate the non-negative invariant.
func NewProduct(code ProductCode, name string, price, stock int) (*Product, error) {
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative, got %d", price)
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock must not be negative, got %d", stock)
	}
	return &Product{Code: code, Name: name, Price: price, Stock: stock}, nil
}
