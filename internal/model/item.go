package model

import "time"

// Item represents a row in the `items` table.  The same struct is used for
// API responses and for cache snapshots, so the JSON tags define both the
// response body and the serialized cache entry format.
//
// Fields:
//  ID          – primary key, assigned by the database on insert.
//  Name        – required, 1–100 characters.
//  Description – optional free text.
//  Price       – required, strictly positive.
//  Quantity    – non-negative stock count, defaults to 0.
//  CreatedAt   – set by the database on insert, immutable.
type Item struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemPatch carries a partial update.  Nil fields are left untouched by the
// repository; only provided values are written.
type ItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}
