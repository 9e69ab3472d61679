// Package store persists the accumulated room series and the run counter between invocations.
//
// The snapshot is an opaque JSON blob; where the blob lives is up to a Backend
// (local file, SQLite database or S3 object).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/runlog"
	"github.com/KimSuSung0326/add-edsdscore-chart-to-excel/src/types"
)

// ErrNotFound is returned by a Backend when no snapshot has been saved yet.
var ErrNotFound = errors.New("store: snapshot not found")

// Backend reads and writes the serialized snapshot as a single blob.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, blob []byte) error
	Delete(ctx context.Context) error
	Describe() string
}

// Encode serializes a snapshot.
func Encode(s types.Snapshot) ([]byte, error) {
	if s.Data == nil {
		s.Data = types.Accumulated{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

// Decode parses a snapshot blob.
func Decode(b []byte) (types.Snapshot, error) {
	var s types.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return types.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.RunCount < 0 {
		return types.Snapshot{}, fmt.Errorf("unmarshal snapshot: negative run count %d", s.RunCount)
	}
	if s.Data == nil {
		s.Data = types.Accumulated{}
	}
	return s, nil
}

// Load returns the saved snapshot. A missing or unreadable snapshot is not an error:
// the run starts from an empty store with counter 0.
func Load(ctx context.Context, b Backend) types.Snapshot {
	blob, err := b.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			runlog.Infof("no persisted store at %s, starting empty", b.Describe())
		} else {
			runlog.Warnf("read store %s: %v; starting empty", b.Describe(), err)
		}
		return types.NewSnapshot()
	}
	s, err := Decode(blob)
	if err != nil {
		runlog.Warnf("store %s is invalid: %v; starting empty", b.Describe(), err)
		return types.NewSnapshot()
	}
	return s
}

// Save overwrites the persisted snapshot.
func Save(ctx context.Context, b Backend, s types.Snapshot) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}
	if err := b.Write(ctx, blob); err != nil {
		return fmt.Errorf("write store %s: %w", b.Describe(), err)
	}
	return nil
}
