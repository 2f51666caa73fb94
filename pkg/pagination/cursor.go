// Package pagination implements keyset pagination over records ordered by
// created_at DESC, id DESC.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned for cursors that do not decode to a position.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the position of the last record on a page.
type Cursor struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Encode returns the opaque URL-safe form of the cursor.
func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeCursor parses an encoded cursor. An empty string yields a nil cursor.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, ErrInvalidCursor
	}
	if c.ID == uuid.Nil || c.CreatedAt.IsZero() {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

// Includes reports whether a record sorts strictly after the cursor,
// i.e. belongs on the next page. A nil cursor includes everything.
func (c *Cursor) Includes(createdAt time.Time, id uuid.UUID) bool {
	if c == nil {
		return true
	}
	if createdAt.Before(c.CreatedAt) {
		return true
	}
	return createdAt.Equal(c.CreatedAt) && strings.Compare(id.String(), c.ID.String()) < 0
}

// NormalizeLimit clamps limit to [1, MaxLimit], using DefaultLimit for
// non-positive values.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// Page trims a limit+1 fetch to limit items and returns the cursor for
// the following page, or "" when this is the last page.
func Page[T any](items []T, limit int, position func(T) Cursor) (page []T, next string, hasMore bool) {
	limit = NormalizeLimit(limit)
	if len(items) <= limit {
		return items, "", false
	}
	page = items[:limit]
	return page, position(page[limit-1]).Encode(), true
}
