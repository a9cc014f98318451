// Package jsonfile implements the SnapshotStore over two local JSON files:
// a catalog object keyed by product code and a ledger array in insertion
// order. Saves replace the whole file contents; there is no locking because
// a single process owns both files for the duration of a run.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sttnf/project-DDP/services/inventory/domain"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
)

// SnapshotStore persists the catalog and ledger as JSON files.
type SnapshotStore struct {
	catalogPath string
	ledgerPath  string
}

// New returns a SnapshotStore over the given file paths.
func New(catalogPath, ledgerPath string) *SnapshotStore {
	return &SnapshotStore{catalogPath: catalogPath, ledgerPath: ledgerPath}
}

// productRecord is the persisted product shape. Pointer fields let decode
// distinguish a missing field from a zero value; field presence is exact.
type productRecord struct {
	Code  *string `json:"code"`
	Name  *string `json:"name"`
	Price *int    `json:"price"`
	Stock *int    `json:"stock"`
}

// transactionRecord is the persisted ledger entry shape.
type transactionRecord struct {
	Timestamp   *string `json:"timestamp"`
	Identity    *string `json:"identity"`
	ProductCode *string `json:"product_code"`
	ProductName *string `json:"product_name"`
	Quantity    *int    `json:"quantity"`
	Total       *int    `json:"total"`
}

// Load reads both files. Missing files bootstrap as empty; any decode
// problem returns an error matching domain.ErrMalformedStorage so the
// caller can degrade to an empty in-memory state.
func (s *SnapshotStore) Load(_ context.Context) ([]*models.Product, []models.Transaction, error) {
	products, err := s.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.loadLedger()
	if err != nil {
		return nil, nil, err
	}
	return products, txs, nil
}

// loadCatalog decodes the catalog object with a token stream so products
// come back in on-disk key order (the order they were first added).
func (s *SnapshotStore) loadCatalog() ([]*models.Product, error) {
	raw, err := os.ReadFile(s.catalogPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog: %w", domain.ErrMalformedStorage, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", domain.ErrMalformedStorage, err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: catalog must be an object, got %v", domain.ErrMalformedStorage, tok)
	}

	var products []*models.Product
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: catalog key: %w", domain.ErrMalformedStorage, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: catalog key is not a string", domain.ErrMalformedStorage)
		}

		var rec productRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: catalog entry %q: %w", domain.ErrMalformedStorage, key, err)
		}
		p, err := productFromRecord(key, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: catalog entry %q: %w", domain.ErrMalformedStorage, key, err)
		}
		products = append(products, p)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: catalog: %w", domain.ErrMalformedStorage, err)
	}
	return products, nil
}

func productFromRecord(key string, rec productRecord) (*models.Product, error) {
	if rec.Code == nil || rec.Name == nil || rec.Price == nil || rec.Stock == nil {
		return nil, errors.New("missing field")
	}
	if *rec.Code != key {
		return nil, fmt.Errorf("code %q does not match key", *rec.Code)
	}
	code, err := models.NewProductCode(*rec.Code)
	if err != nil {
		return nil, err
	}
	return models.NewProduct(code, *rec.Name, *rec.Price, *rec.Stock)
}

func (s *SnapshotStore) loadLedger() ([]models.Transaction, error) {
	raw, err := os.ReadFile(s.ledgerPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read ledger: %w", domain.ErrMalformedStorage, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var recs []transactionRecord
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: ledger: %w", domain.ErrMalformedStorage, err)
	}

	txs := make([]models.Transaction, 0, len(recs))
	for i, rec := range recs {
		tx, err := transactionFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger entry %d: %w", domain.ErrMalformedStorage, i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func transactionFromRecord(rec transactionRecord) (models.Transaction, error) {
	if rec.Timestamp == nil || rec.Identity == nil || rec.ProductCode == nil ||
		rec.ProductName == nil || rec.Quantity == nil || rec.Total == nil {
		return models.Transaction{}, errors.New("missing field")
	}
	if _, err := time.Parse(models.TimestampLayout, *rec.Timestamp); err != nil {
		return models.Transaction{}, fmt.Errorf("bad timestamp: %w", err)
	}
	if *rec.Quantity <= 0 {
		return models.Transaction{}, fmt.Errorf("quantity must be positive, got %d", *rec.Quantity)
	}
	if *rec.Total < 0 {
		return models.Transaction{}, fmt.Errorf("total must not be negative, got %d", *rec.Total)
	}
	return models.Transaction{
		Timestamp:   *rec.Timestamp,
		Identity:    *rec.Identity,
		ProductCode: *rec.ProductCode,
		ProductName: *rec.ProductName,
		Quantity:    *rec.Quantity,
		Total:       *rec.Total,
	}, nil
}

// SaveCatalog replaces the catalog file. The object is written in the order
// of the given slice so load observes the same insertion order.
func (s *SnapshotStore) SaveCatalog(_ context.Context, products []*models.Product) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range products {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Code.String())
		if err != nil {
			return fmt.Errorf("%w: encode catalog: %w", domain.ErrPersistence, err)
		}
		val, err := json.Marshal(productRecord{
			Code:  ptr(p.Code.String()),
			Name:  ptr(p.Name),
			Price: ptr(p.Price),
			Stock: ptr(p.Stock),
		})
		if err != nil {
			return fmt.Errorf("%w: encode catalog: %w", domain.ErrPersistence, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return fmt.Errorf("%w: encode catalog: %w", domain.ErrPersistence, err)
	}
	return s.replace(s.catalogPath, out.Bytes())
}

// SaveLedger replaces the ledger file with the transactions in order.
func (s *SnapshotStore) SaveLedger(_ context.Context, txs []models.Transaction) error {
	recs := make([]transactionRecord, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		recs = append(recs, transactionRecord{
			Timestamp:   &t.Timestamp,
			Identity:    &t.Identity,
			ProductCode: &t.ProductCode,
			ProductName: &t.ProductName,
			Quantity:    &t.Quantity,
			Total:       &t.Total,
		})
	}
	data, err := json.MarshalIndent(recs, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode ledger: %w", domain.ErrPersistence, err)
	}
	return s.replace(s.ledgerPath, data)
}

// Save replaces both files.
func (s *SnapshotStore) Save(ctx context.Context, products []*models.Product, txs []models.Transaction) error {
	if err := s.SaveCatalog(ctx, products); err != nil {
		return err
	}
	return s.SaveLedger(ctx, txs)
}

// replace writes to a temp file in the same directory then renames it over
// the target, so readers never observe a half-written file.
func (s *SnapshotStore) replace(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %w", domain.ErrPersistence, path, err)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
