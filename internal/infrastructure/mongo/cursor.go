package mongo

import (
	"encoding/base64"
	"fmt"

	"github.com/minimart/catalog-api/internal/pkg/storeerr"
)

// Cursors are opaque to clients: the base64 form of the last document id on
// the previous page.

func encodeCursor(lastID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(lastID))
}

func decodeCursor(cursor string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("%w: bad cursor: %v", storeerr.ErrMalformed, err)
	}
	return string(raw), nil
}
