// Package display renders catalog and ledger views for the terminal.
// Everything here is presentation only: stored values are plain integers
// and the tables never touch service state.
package display

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// Formatter renders currency amounts and tables with a fixed prefix,
// grouping digits with thousands separators ("Rp 1,234,567").
type Formatter struct {
	prefix  string
	printer *message.Printer
}

// NewFormatter returns a Formatter using the given currency prefix.
func NewFormatter(prefix string) *Formatter {
	return &Formatter{
		prefix:  prefix,
		printer: message.NewPrinter(language.English),
	}
}

// Currency renders an amount in minor units as a grouped integer with the
// configured prefix.
func (f *Formatter) Currency(amount int) string {
	return f.prefix + " " + f.printer.Sprintf("%d", amount)
}

const productRule = 78

// ProductTable writes the bordered product listing. The Total column is the
// row value price×stock, a display-only figure.
func (f *Formatter) ProductTable(w io.Writer, products []*models.Product) {
	rule := strings.Repeat("=", productRule)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| %-2s | %-8s | %-20s | %12s | %4s | %14s |\n",
		"No", "Code", "Name", "Price", "Stk", "Total")
	fmt.Fprintln(w, rule)
	for i, p := range products {
		fmt.Fprintf(w, "| %-2d | %-8s | %-20s | %12s | %4d | %14s |\n",
			i+1, p.Code.String(), p.Name, f.Currency(p.Price), p.Stock,
			f.Currency(p.Price*p.Stock))
	}
	fmt.Fprintln(w, rule)
}

const transactionRule = 88

// TransactionTable writes the bordered purchase history listing.
func (f *Formatter) TransactionTable(w io.Writer, txs []models.Transaction) {
	rule := strings.Repeat("=", transactionRule)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "| %-19s | %-10s | %-20s | %6s | %15s |\n",
		"Time", "Identity", "Product", "Qty", "Total")
	fmt.Fprintln(w, rule)
	for _, t := range txs {
		fmt.Fprintf(w, "| %-19s | %-10s | %-20s | %6d | %15s |\n",
			t.Timestamp, t.Identity, t.ProductName, t.Quantity, f.Currency(t.Total))
	}
	fmt.Fprintln(w, rule)
}
