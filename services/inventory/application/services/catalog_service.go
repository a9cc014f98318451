package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgevents "github.com/sttnf/project-DDP/pkg/events"
	"github.com/sttnf/project-DDP/pkg/logger"
	pkgvalidator "github.com/sttnf/project-DDP/pkg/validator"
	"github.com/sttnf/project-DDP/services/inventory/domain"
	domainevents "github.com/sttnf/project-DDP/services/inventory/domain/events"
	"github.com/sttnf/project-DDP/services/inventory/domain/models"
	"github.com/sttnf/project-DDP/services/inventory/domain/repositories"
)

// eventSchemaVersion is stamped on every published event payload.
const eventSchemaVersion = 1

// AddProductInput is the boundary shape for Add. Invariants beyond these
// structural checks are enforced by the domain constructors.
type AddProductInput struct {
	Code  string `json:"code" validate:"required,max=32"`
	Name  string `json:"name" validate:"required,max=64"`
	Price int    `json:"price" validate:"gte=0"`
	Stock int    `json:"stock" validate:"gte=0"`
}

// UpdateProductInput carries the optional replacement values for Update.
// A nil field means "leave unchanged"; a supplied field is held to the same
// structural rules as AddProductInput.
type UpdateProductInput struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=64"`
	Price *int    `json:"price" validate:"omitnil,gte=0"`
	Stock *int    `json:"stock" validate:"omitnil,gte=0"`
}

// CatalogService owns the product catalog: an in-memory map of code to
// product plus the insertion order, with every mutation validated first and
// written through to the snapshot store. External code never mutates catalog
// entries except through these operations.
//
// On a persistence failure the in-memory mutation stands and the returned
// error matches domain.ErrPersistence; callers surface it as a warning and
// keep running (in-memory state is authoritative for the session).
type CatalogService struct {
	store    repositories.SnapshotStore
	bus      *pkgevents.EventBus
	log      logger.Logger
	products map[models.ProductCode]*models.Product
	order    []models.ProductCode
}

// NewCatalogService returns a CatalogService seeded with the given products
// in order. The bus may be nil; events are then skipped.
func NewCatalogService(store repositories.SnapshotStore, bus *pkgevents.EventBus, log logger.Logger, seed []*models.Product) *CatalogService {
	s := &CatalogService{
		store:    store,
		bus:      bus,
		log:      log,
		products: make(map[models.ProductCode]*models.Product, len(seed)),
	}
	for _, p := range seed {
		if _, ok := s.products[p.Code]; ok {
			continue
		}
		s.products[p.Code] = p
		s.order = append(s.order, p.Code)
	}
	return s
}

// Add validates and inserts a new product, persists the catalog, and
// publishes product.added.
func (s *CatalogService) Add(ctx context.Context, in AddProductInput) (*models.Product, error) {
	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	}

	code, err := models.NewProductCode(in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	}
	if _, ok := s.products[code]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
	}

	p, err := models.NewProduct(code, in.Name, in.Price, in.Stock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	}

	s.products[code] = p
	s.order = append(s.order, code)

	persistErr := s.persist(ctx)

	s.publish(ctx, domainevents.TopicProductAdded, domainevents.ProductAddedEvent{
		EventID:    uuid.New(),
		Version:    eventSchemaVersion,
		Code:       p.Code.String(),
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	})
	return p, persistErr
}

// Update replaces the supplied fields of an existing product. All supplied
// fields are validated before any is applied, so a rejected update leaves
// the product untouched. Persists and publishes product.updated on success.
func (s *CatalogService) Update(ctx context.Context, code string, in UpdateProductInput) (*models.Product, error) {
	p, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	if err := pkgvalidator.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidValue, err)
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	persistErr := s.persist(ctx)

	s.publish(ctx, domainevents.TopicProductUpdated, domainevents.ProductUpdatedEvent{
		EventID:    uuid.New(),
		Version:    eventSchemaVersion,
		Code:       p.Code.String(),
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	})
	return p, persistErr
}

// Delete removes a product from the catalog and persists. Past transactions
// keep their own snapshot of the product and are untouched.
func (s *CatalogService) Delete(ctx context.Context, code string) error {
	p, err := s.Get(code)
	if err != nil {
		return err
	}

	delete(s.products, p.Code)
	for i, c := range s.order {
		if c == p.Code {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	persistErr := s.persist(ctx)

	s.publish(ctx, domainevents.TopicProductDeleted, domainevents.ProductDeletedEvent{
		EventID:    uuid.New(),
		Version:    eventSchemaVersion,
		Code:       p.Code.String(),
		OccurredAt: time.Now().UTC(),
	})
	return persistErr
}

// AdjustStock applies a signed delta to a product's stock. The floor check
// runs before the mutation, so stock is never observed negative, even
// transiently. Persists on success.
func (s *CatalogService) AdjustStock(ctx context.Context, code string, delta int) (*models.Product, error) {
	p, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if p.Stock+delta < 0 {
		return nil, fmt.Errorf("%w: stock %d, requested change %d", domain.ErrInsufficientStock, p.Stock, delta)
	}

	p.Stock += delta
	return p, s.persist(ctx)
}

// Get returns the product with the given code or ErrNotFound.
func (s *CatalogService) Get(code string) (*models.Product, error) {
	p, ok := s.products[models.ProductCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	return p, nil
}

// List returns all products in catalog insertion order.
func (s *CatalogService) List() []*models.Product {
	out := make([]*models.Product, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.products[code])
	}
	return out
}

func (s *CatalogService) persist(ctx context.Context) error {
	if err := s.store.SaveCatalog(ctx, s.List()); err != nil {
		s.log.WarnContext(ctx, "catalog save failed, in-memory state retained", "error", err)
		return err
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, topic string, payload any) {
	publishEvent(ctx, s.bus, s.log, topic, payload)
}

// publishEvent marshals payload and publishes it; event delivery is
// best-effort and never fails the operation that produced it.
func publishEvent(ctx context.Context, bus *pkgevents.EventBus, log logger.Logger, topic string, payload any) {
	if bus == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.ErrorContext(ctx, "encode event failed", "topic", topic, "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := bus.Publish(ctx, topic, msg); err != nil {
		log.WarnContext(ctx, "publish event failed", "topic", topic, "error", err)
	}
}
