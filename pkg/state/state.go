// Package state persists reporter bookkeeping between runs. Firmware treats
// a stalled sensor update counter as a dead sensor, so counters must pick up
// where the previous process left off rather than restart at zero.
package state

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Store keeps per-slot update counters and a log of reporter runs in a local
// pebble database.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("state: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func counterKey(slot int) []byte {
	return []byte(fmt.Sprintf("counter/%d", slot))
}

// UpdateCount returns the persisted counter for slot, or zero when the slot
// has never been written.
func (s *Store) UpdateCount(slot int) (uint16, error) {
	data, closer, err := s.db.Get(counterKey(slot))
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("state: read counter for slot %d: %w", slot, err)
	}
	defer closer.Close()

	if len(data) < 2 {
		return 0, fmt.Errorf("state: corrupt counter for slot %d", slot)
	}
	return binary.LittleEndian.Uint16(data), nil
}

// SetUpdateCount persists the counter for slot.
func (s *Store) SetUpdateCount(slot int, count uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], count)
	if err := s.db.Set(counterKey(slot), buf[:], pebble.NoSync); err != nil {
		return fmt.Errorf("state: write counter for slot %d: %w", slot, err)
	}
	return nil
}

// Run describes one reporter invocation.
type Run struct {
	StartedAt   time.Time `json:"started_at"`
	BaseAddress uint64    `json:"base_address"`
	Slots       []int     `json:"slots"`
}

// RecordRun appends a run entry under a fresh ksuid, which keeps run records
// sortable by start time.
func (s *Store) RecordRun(r Run) (ksuid.KSUID, error) {
	id := ksuid.New()
	data, err := json.Marshal(r)
	if err != nil {
		return id, fmt.Errorf("state: marshal run record: %w", err)
	}
	key := append([]byte("run/"), id.Bytes()...)
	if err := s.db.Set(key, data, pebble.NoSync); err != nil {
		return id, fmt.Errorf("state: write run record: %w", err)
	}
	return id, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}
