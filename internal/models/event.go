package models

import "time"

// Product event types, also used as AMQP routing keys.
const (
	EventProductCreated             = "product.created"
	EventProductUpdated             = "product.updated"
	EventProductAvailabilityUpdated = "product.availability_updated"
	EventProductDeleted             = "product.deleted"
)

// ProductEvent describes a change applied to a product.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  uint      `json:"productId"`
	Product    *Product  `json:"product,omitempty"` // nil for deletions
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent builds an event for the given product. The product is
// omitted from the payload for deletions.
func NewProductEvent(eventType string, product *Product) ProductEvent {
	event := ProductEvent{
		Type:       eventType,
		ProductID:  product.ID,
		OccurredAt: time.Now().UTC(),
	}
	if eventType != EventProductDeleted {
		snapshot := *product
		event.Product = &snapshot
	}
	return event
}
