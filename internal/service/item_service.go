// Package service orchestrates repositories, the cache layer and the event
// queue behind the HTTP handlers.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/inventory-api/internal/cache"
	"github.com/iliyamo/inventory-api/internal/model"
)

// ItemStore is the persistence contract the service needs.  *repository.ItemRepo
// satisfies it; tests substitute an in-memory fake.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id uint64) (*model.Item, error)
	List(ctx context.Context, skip, limit int) ([]*model.Item, error)
	Update(ctx context.Context, id uint64, p model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id uint64) error
}

// ItemService applies the cache-aside policy around the item store.  Reads
// go through the cache; every mutation writes the store first and then
// invalidates the affected entries on the same request.  Cached entries are
// point-in-time snapshots and are never patched in place.
type ItemService struct {
	store   ItemStore
	cache   *cache.Cache
	itemTTL time.Duration
	listTTL time.Duration
	events  *EventPublisher // nil disables event publishing
}

// NewItemService wires the store, cache and optional event publisher.
func NewItemService(store ItemStore, c *cache.Cache, itemTTL, listTTL time.Duration, events *EventPublisher) *ItemService {
	return &ItemService{store: store, cache: c, itemTTL: itemTTL, listTTL: listTTL, events: events}
}

const listPattern = "items:list:*"

func itemKey(id uint64) string       { return fmt.Sprintf("item:%d", id) }
func listKey(skip, limit int) string { return fmt.Sprintf("items:list:%d:%d", skip, limit) }

// Get returns one item, serving from cache when possible and populating the
// cache on a store hit.
func (s *ItemService) Get(ctx context.Context, id uint64) (*model.Item, error) {
	key := itemKey(id)
	var cached model.Item
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}
	it, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, it, s.itemTTL)
	return it, nil
}

// List returns a page of items keyed by its exact pagination shape.  List
// entries use a shorter TTL than single items since list views tolerate
// more staleness.
func (s *ItemService) List(ctx context.Context, skip, limit int) ([]*model.Item, error) {
	key := listKey(skip, limit)
	var cached []*model.Item
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	items, err := s.store.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, items, s.listTTL)
	return items, nil
}

// Create inserts the item and invalidates all list entries so the next list
// read reflects the new row.  The single-item cache is left to self-populate
// on the next read.
func (s *ItemService) Create(ctx context.Context, it *model.Item) error {
	if err := s.store.Create(ctx, it); err != nil {
		return err
	}
	s.cache.DeletePattern(ctx, listPattern)
	s.events.Publish(ctx, EventItemCreated, it)
	return nil
}

// Update applies the partial patch and invalidates both the single-item
// entry and every list entry, since contents and ordering may have changed.
// No cache operation happens when the row does not exist.
func (s *ItemService) Update(ctx context.Context, id uint64, p model.ItemPatch) (*model.Item, error) {
	it, err := s.store.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, itemKey(id))
	s.cache.DeletePattern(ctx, listPattern)
	s.events.Publish(ctx, EventItemUpdated, it)
	return it, nil
}

// Delete removes the item and invalidates its entry plus every list entry.
func (s *ItemService) Delete(ctx context.Context, id uint64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, itemKey(id))
	s.cache.DeletePattern(ctx, listPattern)
	s.events.Publish(ctx, EventItemDeleted, &model.Item{ID: id})
	return nil
}
