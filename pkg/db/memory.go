package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

type storeOptions struct {
	delay  Delay
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
	kind   model.Kind
}

// Option configures a MemoryStore
type Option func(*storeOptions)

// WithDelay sets the latency strategy applied before every operation
func WithDelay(d Delay) Option {
	return func(o *storeOptions) {
		if d != nil {
			o.delay = d
		}
	}
}

// WithClock sets the time source used for created_date and updated_date
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the UUID id source
func WithIDGenerator(newID func() string) Option {
	return func(o *storeOptions) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithLogger sets the logger used for store diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func withKind(kind model.Kind) Option {
	return func(o *storeOptions) {
		o.kind = kind
	}
}

// MemoryStore holds one entity kind's collection in memory.
// Operations copy records in and out so callers never share state with the store.
type MemoryStore[T model.Fielder, P Entity[T]] struct {
	mu      sync.RWMutex
	records []T
	seed    []T
	opts    storeOptions
}

var _ RecordStore[model.Emergency] = (*MemoryStore[model.Emergency, *model.Emergency])(nil)

// NewMemoryStore creates a store holding a copy of seed.
// Seed records without an id are assigned one; their timestamps are kept as given.
func NewMemoryStore[T model.Fielder, P Entity[T]](seed []T, opts ...Option) *MemoryStore[T, P] {
	o := storeOptions{
		delay:  RandomDelay(DefaultMinLatency, DefaultMaxLatency),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &MemoryStore[T, P]{opts: o}
	s.seed = make([]T, 0, len(seed))
	for _, rec := range seed {
		rec = s.clone(rec)
		P(&rec).Normalize()
		if meta := P(&rec).Metadata(); meta.ID == "" {
			meta.ID = o.newID()
		}
		s.seed = append(s.seed, rec)
	}
	s.records = s.cloneAll(s.seed)
	return s
}

func (s *MemoryStore[T, P]) clone(rec T) T {
	return P(&rec).Clone()
}

func (s *MemoryStore[T, P]) cloneAll(records []T) []T {
	out := make([]T, len(records))
	for i, rec := range records {
		out[i] = s.clone(rec)
	}
	return out
}

func (s *MemoryStore[T, P]) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(rec T) bool {
		return P(&rec).Metadata().ID == id
	})
}

// List returns up to limit records ordered by sortSpec ("field" or "-field").
// An unknown sort field falls back to store order.
func (s *MemoryStore[T, P]) List(ctx context.Context, sortSpec string, limit int) ([]T, error) {
	if err := s.opts.delay(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := s.cloneAll(s.records)
	s.mu.RUnlock()

	if err := SortRecords(records, sortSpec); err != nil {
		s.opts.logger.Warn("Ignoring sort order",
			zap.String("kind", string(s.opts.kind)),
			zap.String("sort", sortSpec),
			zap.Error(err))
	}

	records = Limit(records, limit)
	s.opts.logger.Debug("Listed records",
		zap.String("kind", string(s.opts.kind)),
		zap.String("sort", sortSpec),
		zap.Int("limit", limit),
		zap.Int("count", len(records)))
	return records, nil
}

// Get returns the record with the given id, or ErrNotFound
func (s *MemoryStore[T, P]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := s.opts.delay(ctx); err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %s: %w", s.opts.kind, id, ErrNotFound)
	}
	return s.clone(s.records[i]), nil
}

// Create assigns a fresh id and timestamps to draft and stores it
func (s *MemoryStore[T, P]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if err := s.opts.delay(ctx); err != nil {
		return zero, err
	}

	rec := s.clone(draft)
	P(&rec).Normalize()
	now := s.opts.now()
	meta := P(&rec).Metadata()
	meta.ID = s.opts.newID()
	meta.CreatedDate = now
	meta.UpdatedDate = now

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	s.opts.logger.Debug("Created record", zap.String("kind", string(s.opts.kind)), zap.String("id", meta.ID))
	return s.clone(rec), nil
}

// Update merges patch into the stored record and refreshes updated_date.
// The id and created_date never change.
func (s *MemoryStore[T, P]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	var zero T
	if err := s.opts.delay(ctx); err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %s: %w", s.opts.kind, id, ErrNotFound)
	}

	current := s.records[i]
	merged, err := applyPatch(current, patch)
	if err != nil {
		return zero, fmt.Errorf("failed to update %s %s: %w", s.opts.kind, id, err)
	}

	P(&merged).Normalize()
	meta := P(&merged).Metadata()
	*meta = *P(&current).Metadata()
	meta.UpdatedDate = s.opts.now()

	s.records[i] = merged
	s.opts.logger.Debug("Updated record",
		zap.String("kind", string(s.opts.kind)),
		zap.String("id", id),
		zap.Int("fields", len(patch)))
	return s.clone(merged), nil
}

// Delete removes the record with the given id.
// It reports false, without an error, when the id does not exist.
func (s *MemoryStore[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.opts.delay(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.opts.logger.Debug("Delete of missing record", zap.String("kind", string(s.opts.kind)), zap.String("id", id))
		return false, nil
	}
	s.records = slices.Delete(s.records, i, i+1)
	return true, nil
}

// Reset restores the seed collection, discarding every change since construction
func (s *MemoryStore[T, P]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.cloneAll(s.seed)
}

// Len returns the current collection size without simulated latency
func (s *MemoryStore[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IsNotFound reports whether err signals a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
