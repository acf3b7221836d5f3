package store

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fees are the fixed checkout surcharges added to every order total.
type Fees struct {
	Delivery decimal.Decimal
	Service  decimal.Decimal
}

// DefaultFees returns the production fee policy.
func DefaultFees() Fees {
	return Fees{
		Delivery: decimal.RequireFromString("2.99"),
		Service:  decimal.RequireFromString("1.50"),
	}
}

// Store is the local cart/order persistence layer. All access goes through
// an injected gorm handle; mutations for a given user are serialized behind
// a per-user lock and executed inside a single transaction, so re-entrant
// calls from UI event handlers cannot interleave read-modify-write
// sequences or observe half-applied writes.
type Store struct {
	db       *gorm.DB
	log      *slog.Logger
	fees     Fees
	locks    *keyedMutex
	events   *Bus
	schemaMu sync.Mutex
}

// Option customizes a Store at construction time.
type Option func(*Store)

// WithFees overrides the default checkout fee policy.
func WithFees(f Fees) Option {
	return func(s *Store) { s.fees = f }
}

// WithLogger sets the structured logger used for operational logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store on top of db. The handle is expected to point at a
// local embedded SQLite database with a single-connection pool.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		log:    slog.Default(),
		fees:   DefaultFees(),
		locks:  newKeyedMutex(),
		events: NewBus(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events returns the bus on which cart/order change notifications are
// published after successful mutations.
func (s *Store) Events() *Bus { return s.events }

// withUserLock runs fn while holding the mutation lock for userID.
func (s *Store) withUserLock(userID string, fn func() error) error {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)
	return fn()
}

// withUserLocks runs fn while holding the locks for both user ids, acquired
// in sorted order so concurrent migrations cannot deadlock.
func (s *Store) withUserLocks(a, b string, fn func() error) error {
	if b < a {
		a, b = b, a
	}
	s.locks.Lock(a)
	defer s.locks.Unlock(a)
	if a != b {
		s.locks.Lock(b)
		defer s.locks.Unlock(b)
	}
	return fn()
}

// keyedMutex hands out one mutex per key. Entries are never evicted; the
// key space is the handful of user ids seen on one device.
type keyedMutex struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{m: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()
	l.Lock()
}

func (k *keyedMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.m[key]
	k.mu.Unlock()
	l.Unlock()
}
