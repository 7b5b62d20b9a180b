package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been written or has
// been deleted.
var ErrNotFound = errors.New("key not found")

func validateKey(key string) error {
	if key == "" {
		return errors.New("storage key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
