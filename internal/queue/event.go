// Package queue defines message payloads exchanged over the message broker.
package queue

// ItemEventQueue is the durable queue carrying item change events.
const ItemEventQueue = "item.events"

// ItemEvent is published whenever an item is created, updated or deleted.
// It carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ItemEvent struct {
	Action     string  `json:"action"` // created | updated | deleted
	ItemID     uint64  `json:"item_id"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
