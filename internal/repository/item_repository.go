// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for the items table.  All methods take
// a context so callers can bound query time with the request deadline.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/inventory-api/internal/model"
)

// ErrItemNotFound is returned when an item cannot be found in the DB.
var ErrItemNotFound = errors.New("item not found")

// ItemRepo encapsulates all database queries related to items.  It depends
// on a sql.DB connection which is injected at startup.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo with the provided DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create inserts a new item.  On success the item's ID and CreatedAt fields
// are populated from the database so callers receive a fully populated
// record.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	const qInsert = "INSERT INTO items (name, description, price, quantity) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, it.Name, nullable(it.Description), it.Price, it.Quantity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)

	// Follow-up SELECT to populate the DB-assigned created_at.
	const qSelect = "SELECT created_at FROM items WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, it.ID).Scan(&it.CreatedAt)
}

// GetByID fetches an item by its ID.  Returns ErrItemNotFound when no row
// matches.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	const q = "SELECT id, name, description, price, quantity, created_at FROM items WHERE id = ?"
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

// List returns items ordered by id using offset/limit pagination.
func (r *ItemRepo) List(ctx context.Context, skip, limit int) ([]*model.Item, error) {
	const q = `SELECT id, name, description, price, quantity, created_at
	           FROM items ORDER BY id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update applies only the fields present in the patch and returns the
// updated row.  A patch with no set fields is a no-op read.  Returns
// ErrItemNotFound when the row does not exist.
func (r *ItemRepo) Update(ctx context.Context, id uint64, p model.ItemPatch) (*model.Item, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if p.Name != nil {
		set = append(set, "name=?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		set = append(set, "description=?")
		args = append(args, nullable(*p.Description))
	}
	if p.Price != nil {
		set = append(set, "price=?")
		args = append(args, *p.Price)
	}
	if p.Quantity != nil {
		set = append(set, "quantity=?")
		args = append(args, *p.Quantity)
	}
	if len(set) > 0 {
		q := "UPDATE items SET " + strings.Join(set, ", ") + " WHERE id=?"
		args = append(args, id)
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		// RowsAffected is 0 both for a missing row and for a no-change
		// write, so existence is settled by the re-read below.
		_, _ = res.RowsAffected()
	}
	return r.GetByID(ctx, id)
}

// Delete removes an item.  Returns ErrItemNotFound when no row was deleted.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface{ Scan(dest ...any) error }

func scanItem(s scanner) (*model.Item, error) {
	var it model.Item
	var desc sql.NullString
	if err := s.Scan(&it.ID, &it.Name, &desc, &it.Price, &it.Quantity, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.Description = desc.String
	return &it, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
