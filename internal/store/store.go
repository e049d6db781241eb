package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Named collection slots persisted by the gateway.
const (
	CollectionStudents   = "students"
	CollectionClassrooms = "classrooms"
	CollectionResources  = "resources"
)

// SnapshotVersion tags the blob envelope so future format changes can be
// detected on load.
const SnapshotVersion = 1

// ErrNotFound is returned when a named slot has no prior save.
var ErrNotFound = errors.New("snapshot not found")

// Store persists whole collections to named slots as opaque versioned
// blobs. Save overwrites any prior save; Load returns ErrNotFound when no
// save exists. Callers decide how load failures degrade.
type Store interface {
	Load(ctx context.Context, name string, dest interface{}) error
	Save(ctx context.Context, name string, value interface{}) error
	Close() error
}

// envelope wraps a serialized collection with its format version.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

func encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}
	blob, err := json.Marshal(envelope{Version: SnapshotVersion, SavedAt: time.Now().UTC(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot envelope: %w", err)
	}
	return blob, nil
}

func decode(blob []byte, dest interface{}) error {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("unmarshal snapshot envelope: %w", err)
	}
	if env.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("unmarshal collection: %w", err)
	}
	return nil
}
