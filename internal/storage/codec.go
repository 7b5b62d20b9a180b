package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matthieukhl/storefront/internal/types"
)

// ErrMalformed is returned by ReadJSON when the stored value is not valid
// JSON for the requested type.
var ErrMalformed = errors.New("malformed value")

// ReadJSON decodes the value stored under key into v. It reports false, with
// a nil error, when the key is absent.
func ReadJSON(ctx context.Context, s types.Storage, key string, v any) (bool, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("%w under %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

// WriteJSON replaces the value under key with the JSON encoding of v.
func WriteJSON(ctx context.Context, s types.Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
