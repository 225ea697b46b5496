package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/inventory-api/internal/model"
    q "github.com/iliyamo/inventory-api/internal/queue"
)

// Event actions published to the item event queue.
const (
    EventItemCreated = "created"
    EventItemUpdated = "updated"
    EventItemDeleted = "deleted"
)

// EventPublisher publishes item change events to RabbitMQ.  Publishing is
// strictly best effort: any error is logged and swallowed so a broker outage
// never interrupts the request flow.  A nil publisher disables publishing.
type EventPublisher struct {
    url string
}

// NewEventPublisher returns a publisher for the given AMQP URL, or nil when
// the URL is empty (event publishing disabled).
func NewEventPublisher(url string) *EventPublisher {
    if url == "" {
        return nil
    }
    return &EventPublisher{url: url}
}

// Publish sends one item event to the "item.events" queue.  Messages are
// marked as persistent so they survive broker restarts.  The function never
// panics and is safe to call on a nil receiver.
func (p *EventPublisher) Publish(ctx context.Context, action string, it *model.Item) {
    if p == nil {
        return
    }
    event := q.ItemEvent{
        Action:     action,
        ItemID:     it.ID,
        Name:       it.Name,
        Price:      it.Price,
        Quantity:   it.Quantity,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }

    conn, err := amqp.Dial(p.url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.ItemEventQueue, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx, "", q.ItemEventQueue, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
    }
}
