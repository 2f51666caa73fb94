package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorEncodeDecode(t *testing.T) {
	cursor := Cursor{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC().Round(time.Second),
	}

	encoded := cursor.Encode()
	decoded, err := DecodeCursor(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded == nil {
		t.Fatalf("decoded cursor is nil")
	}
	if decoded.ID != cursor.ID || !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Fatalf("decoded cursor mismatch: %+v", decoded)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	tests := map[string]string{
		"bad base64": "bad!=base64",
		"not json":   base64.RawURLEncoding.EncodeToString([]byte("plain")),
		"missing id": Cursor{CreatedAt: time.Now()}.Encode(),
		"zero time":  Cursor{ID: uuid.New()}.Encode(),
	}
	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeCursor(encoded); !errors.Is(err, ErrInvalidCursor) {
				t.Fatalf("expected ErrInvalidCursor, got %v", err)
			}
		})
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestCursorIncludes(t *testing.T) {
	at := time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC)
	low := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	high := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	cursor := &Cursor{ID: high, CreatedAt: at}

	tests := []struct {
		name      string
		createdAt time.Time
		id        uuid.UUID
		want      bool
	}{
		{"older record", at.Add(-time.Minute), high, true},
		{"newer record", at.Add(time.Minute), low, false},
		{"same time lower id", at, low, true},
		{"cursor record itself", at, high, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cursor.Includes(tt.createdAt, tt.id); got != tt.want {
				t.Fatalf("Includes() = %v, want %v", got, tt.want)
			}
		})
	}

	var none *Cursor
	if !none.Includes(at, low) {
		t.Fatalf("nil cursor should include every record")
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-10, DefaultLimit},
		{MaxLimit + 1, MaxLimit},
		{50, 50},
	}

	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	at := time.Date(2025, 9, 22, 10, 0, 0, 0, time.UTC)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	position := func(id uuid.UUID) Cursor { return Cursor{ID: id, CreatedAt: at} }

	page, next, more := Page(ids, 2, position)
	if len(page) != 2 || !more {
		t.Fatalf("expected 2 items with more, got %d, %v", len(page), more)
	}
	decoded, err := DecodeCursor(next)
	if err != nil || decoded.ID != ids[1] {
		t.Fatalf("next cursor should point at the last item on the page: %+v, %v", decoded, err)
	}

	page, next, more = Page(ids[:2], 2, position)
	if len(page) != 2 || more || next != "" {
		t.Fatalf("expected last page, got %d items, %q, %v", len(page), next, more)
	}
}
