package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the inventory services.
const (
	TopicProductAdded     = "product.added"
	TopicProductUpdated   = "product.updated"
	TopicProductDeleted   = "product.deleted"
	TopicPurchaseRecorded = "purchase.recorded"
)

// ProductAddedEvent is published after a new product is inserted into the catalog.
type ProductAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	Stock      int       `json:"stock"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProductUpdatedEvent is published after an existing product is modified.
// Fields carry the post-update values.
type ProductUpdatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	Stock      int       `json:"stock"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProductDeletedEvent is published after a product is removed from the catalog.
type ProductDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	Code       string    `json:"code"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PurchaseRecordedEvent is published after a purchase has been applied to the
// catalog and appended to the ledger.
type PurchaseRecordedEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Version     int       `json:"version"`
	Identity    string    `json:"identity"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Total       int       `json:"total"`
	OccurredAt  time.Time `json:"occurred_at"`
}
