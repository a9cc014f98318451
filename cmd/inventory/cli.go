package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sttnf/project-DDP/pkg/auth"
	"github.com/sttnf/project-DDP/pkg/display"
	"github.com/sttnf/project-DDP/pkg/logger"
	pkgvalidator "github.com/sttnf/project-DDP/pkg/validator"
	"github.com/sttnf/project-DDP/services/inventory/domain"

	invservices "github.com/sttnf/project-DDP/services/inventory/application/services"
)

type cliDeps struct {
	catalog   *invservices.CatalogService
	ledger    *invservices.LedgerService
	purchase  *invservices.PurchaseService
	query     *invservices.CatalogQuery
	creds     *auth.CredentialStore
	formatter *display.Formatter
	log       logger.Logger
}

// cli drives the interactive session. It only parses input and renders
// output; every rule lives in the services it calls.
type cli struct {
	cliDeps
	in  *bufio.Scanner
	out io.Writer
	eof bool // input is exhausted; every loop must wind down
}

func newCLI(deps cliDeps) *cli {
	return &cli{cliDeps: deps, in: bufio.NewScanner(os.Stdin), out: os.Stdout}
}

func (c *cli) run(ctx context.Context) {
	identity, ok := c.login()
	if !ok {
		return
	}
	c.log.Info("login", "username", identity.Username, "role", identity.Role)

	switch identity.Role {
	case auth.RoleAdmin:
		c.adminLoop(ctx, identity)
	default:
		c.userLoop(ctx, identity)
	}
}

func (c *cli) login() (auth.Identity, bool) {
	fmt.Fprintln(c.out, "\n=== LOGIN ===")
	username := c.prompt("Username: ")
	password := c.prompt("Password: ")
	if c.eof {
		return auth.Identity{}, false
	}

	identity, err := c.creds.Login(username, password)
	if err != nil {
		fmt.Fprintln(c.out, "\nLogin failed!")
		return auth.Identity{}, false
	}
	return identity, true
}

func (c *cli) adminLoop(ctx context.Context, identity auth.Identity) {
	for {
		c.printAdminMenu()
		choice := c.prompt("\nChoice: ")
		if c.eof {
			return
		}
		switch choice {
		case "1":
			c.showProducts(invservices.SortNone)
		case "2":
			c.addProduct(ctx)
		case "3":
			c.updateProduct(ctx)
		case "4":
			c.deleteProduct(ctx)
		case "5":
			c.showProducts(invservices.SortNameAsc)
		case "6":
			c.showProducts(invservices.SortNameDesc)
		case "7":
			c.showProducts(invservices.SortPriceAsc)
		case "8":
			c.showProducts(invservices.SortPriceDesc)
		case "9":
			c.showTransactions(identity.Username, true)
		case "0":
			return
		default:
			fmt.Fprintln(c.out, "\nInvalid choice!")
		}
	}
}

func (c *cli) userLoop(ctx context.Context, identity auth.Identity) {
	for {
		c.showProducts(invservices.SortNone)
		c.printUserMenu()
		choice := c.prompt("\nChoice: ")
		if c.eof {
			return
		}
		switch choice {
		case "1":
			c.buyProduct(ctx, identity)
		case "2":
			c.showTransactions(identity.Username, false)
		case "0":
			return
		default:
			fmt.Fprintln(c.out, "\nInvalid choice!")
		}
	}
}

func (c *cli) printAdminMenu() {
	fmt.Fprintln(c.out, "\nMenu:")
	fmt.Fprintln(c.out, "1. View Products")
	fmt.Fprintln(c.out, "2. Add Product")
	fmt.Fprintln(c.out, "3. Update Product")
	fmt.Fprintln(c.out, "4. Delete Product")
	fmt.Fprintln(c.out, "5. Sort by Name [A-Z]")
	fmt.Fprintln(c.out, "6. Sort by Name [Z-A]")
	fmt.Fprintln(c.out, "7. Sort by Price [0-9]")
	fmt.Fprintln(c.out, "8. Sort by Price [9-0]")
	fmt.Fprintln(c.out, "9. Transaction History")
	fmt.Fprintln(c.out, "0. Exit")
}

func (c *cli) printUserMenu() {
	fmt.Fprintln(c.out, "\nMenu:")
	fmt.Fprintln(c.out, "1. Buy Product")
	fmt.Fprintln(c.out, "2. Transaction History")
	fmt.Fprintln(c.out, "0. Exit")
}

func (c *cli) showProducts(criterion invservices.SortCriterion) {
	products := c.query.SortedView(criterion)
	if len(products) == 0 {
		fmt.Fprintln(c.out, "\nNo products in the system.")
		return
	}
	fmt.Fprintln(c.out)
	c.formatter.ProductTable(c.out, products)
}

func (c *cli) addProduct(ctx context.Context) {
	fmt.Fprintln(c.out, "\n=== ADD PRODUCT ===")

	code := c.prompt("Product Code : ")
	name := c.prompt("Product Name : ")
	price, ok := c.promptInt("Product Price: ")
	if !ok {
		return
	}
	stock, ok := c.promptInt("Product Stock: ")
	if !ok {
		return
	}

	_, err := c.catalog.Add(ctx, invservices.AddProductInput{
		Code: code, Name: name, Price: price, Stock: stock,
	})
	if c.reportError(err) {
		return
	}
	fmt.Fprintln(c.out, "\nProduct added!")
}

func (c *cli) updateProduct(ctx context.Context) {
	fmt.Fprintln(c.out, "\n=== UPDATE PRODUCT ===")

	code := c.prompt("Enter product code: ")
	p, err := c.catalog.Get(code)
	if c.reportError(err) {
		return
	}

	fmt.Fprintln(c.out, "\nCurrent product data:")
	fmt.Fprintf(c.out, "Name : %s\n", p.Name)
	fmt.Fprintf(c.out, "Price: %s\n", c.formatter.Currency(p.Price))
	fmt.Fprintf(c.out, "Stock: %d\n", p.Stock)

	var in invservices.UpdateProductInput
	if name := c.prompt("\nNew name (blank to keep): "); name != "" {
		in.Name = &name
	}
	if raw := c.prompt("New price (blank to keep): "); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(c.out, "\nPrice must be a number!")
			return
		}
		in.Price = &price
	}
	if raw := c.prompt("New stock (blank to keep): "); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(c.out, "\nStock must be a number!")
			return
		}
		in.Stock = &stock
	}

	if _, err := c.catalog.Update(ctx, code, in); c.reportError(err) {
		return
	}
	fmt.Fprintln(c.out, "\nProduct updated!")
}

func (c *cli) deleteProduct(ctx context.Context) {
	fmt.Fprintln(c.out, "\n=== DELETE PRODUCT ===")

	code := c.prompt("Enter product code: ")
	if err := c.catalog.Delete(ctx, code); c.reportError(err) {
		return
	}
	fmt.Fprintln(c.out, "\nProduct deleted!")
}

func (c *cli) buyProduct(ctx context.Context, identity auth.Identity) {
	fmt.Fprintln(c.out, "\n=== BUY PRODUCT ===")

	code := c.prompt("Enter product code: ")
	p, err := c.catalog.Get(code)
	if c.reportError(err) {
		return
	}

	fmt.Fprintln(c.out, "\nProduct detail:")
	fmt.Fprintf(c.out, "Name : %s\n", p.Name)
	fmt.Fprintf(c.out, "Price: %s\n", c.formatter.Currency(p.Price))
	fmt.Fprintf(c.out, "Stock: %d\n", p.Stock)

	quantity, ok := c.promptInt("\nQuantity to buy: ")
	if !ok {
		return
	}

	fmt.Fprintf(c.out, "\nTotal: %s\n", c.formatter.Currency(quantity*p.Price))
	if strings.ToLower(c.prompt("Confirm purchase (y/n)? ")) != "y" {
		fmt.Fprintln(c.out, "\nPurchase cancelled.")
		return
	}

	if _, err := c.purchase.Purchase(ctx, identity.Username, code, quantity); c.reportError(err) {
		return
	}
	fmt.Fprintln(c.out, "\nPurchase complete!")
}

func (c *cli) showTransactions(username string, isAdmin bool) {
	fmt.Fprintln(c.out, "\n=== TRANSACTION HISTORY ===")

	txs := c.ledger.ListAll()
	if !isAdmin {
		txs = c.ledger.ListByIdentity(username)
	}
	if len(txs) == 0 {
		fmt.Fprintln(c.out, "\nNo transactions yet.")
		return
	}
	fmt.Fprintln(c.out)
	c.formatter.TransactionTable(c.out, txs)
}

func (c *cli) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *cli) promptInt(label string) (int, bool) {
	raw := c.prompt(label)
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(c.out, "\nMust be a number!")
		return 0, false
	}
	return n, true
}

// reportError renders a domain error for the user and reports whether the
// calling flow should stop. A persistence failure is a warning only: the
// operation took effect in memory and the session continues.
func (c *cli) reportError(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, domain.ErrPersistence):
		fmt.Fprintln(c.out, "\nWarning: changes could not be saved to disk; they remain active for this session.")
		c.log.Warn("persistence failure", "error", err)
		return false
	case errors.Is(err, domain.ErrDuplicateCode):
		fmt.Fprintln(c.out, "\nProduct code already exists!")
	case errors.Is(err, domain.ErrNotFound):
		fmt.Fprintln(c.out, "\nProduct not found!")
	case errors.Is(err, domain.ErrInvalidValue):
		fmt.Fprintln(c.out, "\nInvalid product data!")
		c.printFieldErrors(err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		fmt.Fprintln(c.out, "\nQuantity must be greater than 0!")
	case errors.Is(err, domain.ErrInsufficientStock):
		fmt.Fprintln(c.out, "\nInsufficient stock!")
	default:
		fmt.Fprintf(c.out, "\nOperation failed: %v\n", err)
	}
	return true
}

// printFieldErrors lists per-field validation messages, one per line, in a
// stable order.
func (c *cli) printFieldErrors(err error) {
	fields := pkgvalidator.FormatValidationErrors(err)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.out, "  %s: %s\n", name, fields[name])
	}
}
