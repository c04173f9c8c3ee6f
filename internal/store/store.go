// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("flow state not found")

// Store persists flow snapshots between worker jobs. Values are encoded as
// JSON; a Save replaces the whole snapshot and expiry is left to Config.TTL.
type Store interface {
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
}

func BoardKey(boardID string) string {
	return fmt.Sprintf("gigboard:board:%s", boardID)
}

func SessionKey(sessionID string) string {
	return fmt.Sprintf("gigboard:browse:%s", sessionID)
}

// Config controls snapshot lifetime. A zero TTL keeps keys forever.
type Config struct {
	TTL time.Duration
}
