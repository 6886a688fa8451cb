// Package progress keeps the per-puzzle completion record and persists it
// as the "completed" array of the settings blob.
package progress

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"secretcode/pkg/engine/storage"
)

// Key is the storage key the settings blob lives under.
const Key = "secret-code-28"

// Slots is the number of puzzle indices the record covers.
const Slots = 15

// HintThreshold is the counter value at or below which hints unlock.
const HintThreshold = -3

const completedPath = "completed"

// Record holds one counter per puzzle index. A positive value means solved;
// zero or below counts failed attempts.
type Record [Slots]int

// Solved reports whether slot i is positive. Out-of-range slots are unsolved.
func (r Record) Solved(i int) bool {
	return i >= 0 && i < Slots && r[i] > 0
}

// Store owns the Record and writes it back after every mutation.
type Store struct {
	kv     storage.Store
	record Record
	blob   []byte
	log    *zap.Logger
}

// Load reads the record from kv. An absent or malformed blob yields the
// all-zero default; only a failing backend returns an error.
func Load(ctx context.Context, kv storage.Store, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log}
	raw, err := kv.Get(ctx, Key)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("load progress: %w", err)
	}
	rec, ok := decode(raw)
	if !ok {
		log.Warn("malformed progress blob, using defaults", zap.ByteString("blob", raw))
		return s, nil
	}
	s.record = rec
	s.blob = raw
	return s, nil
}

func decode(raw []byte) (Record, bool) {
	var rec Record
	if !gjson.ValidBytes(raw) {
		return rec, false
	}
	arr := gjson.GetBytes(raw, completedPath)
	if !arr.IsArray() {
		return rec, false
	}
	items := arr.Array()
	if len(items) != Slots {
		return rec, false
	}
	for i, v := range items {
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			return rec, false
		}
		rec[i] = int(v.Int())
	}
	return rec, true
}

// Record returns a copy of the current record.
func (s *Store) Record() Record {
	return s.record
}

// Get returns the counter at slot i, zero when out of range.
func (s *Store) Get(i int) int {
	if i < 0 || i >= Slots {
		return 0
	}
	return s.record[i]
}

// Solved reports whether slot i is solved.
func (s *Store) Solved(i int) bool {
	return s.record.Solved(i)
}

// HintUnlocked reports whether slot i has reached the hint threshold.
func (s *Store) HintUnlocked(i int) bool {
	return s.Get(i) <= HintThreshold
}

// MarkSolved sets slot i to 1 and saves. The in-memory record is updated
// even when saving fails.
func (s *Store) MarkSolved(ctx context.Context, i int) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	s.record[i] = 1
	return s.Save(ctx)
}

// Penalize decrements slot i and saves.
func (s *Store) Penalize(ctx context.Context, i int) error {
	if err := checkSlot(i); err != nil {
		return err
	}
	s.record[i]--
	return s.Save(ctx)
}

// Reset restores the all-zero default and saves.
func (s *Store) Reset(ctx context.Context) error {
	s.record = Record{}
	return s.Save(ctx)
}

// Save writes the record into the settings blob, keeping any other keys the
// blob already carries.
func (s *Store) Save(ctx context.Context) error {
	base := s.blob
	if len(base) == 0 {
		base = []byte(`{}`)
	}
	out, err := sjson.SetBytes(base, completedPath, s.record[:])
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.kv.Put(ctx, Key, out); err != nil {
		s.log.Error("saving progress failed", zap.Error(err))
		return fmt.Errorf("save progress: %w", err)
	}
	s.blob = out
	s.log.Debug("progress saved", zap.Ints("completed", s.record[:]))
	return nil
}

// AllSolved reports whether every index in indices is solved.
func (s *Store) AllSolved(indices []int) bool {
	for _, i := range indices {
		if !s.Solved(i) {
			return false
		}
	}
	return len(indices) > 0
}

func checkSlot(i int) error {
	if i < 0 || i >= Slots {
		return fmt.Errorf("progress slot %d out of range", i)
	}
	return nil
}
