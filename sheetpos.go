// Package sheetpos treats a schema-less spreadsheet as the record store of a
// small point-of-sale tool: products, users and sales orders live as rows of
// three sheets. Every database-like guarantee — uniqueness, row addressing,
// composite keys, locale-sensitive value encoding — is emulated over a plain
// range API (see Backend).
//
// The existence check and the write behind an insert are separate network
// calls with no lock between them, so concurrent writers of the same key are
// not serialized. That is an accepted property of a single-tenant tool, not
// a bug to fix with retries.
package sheetpos

import (
	"fmt"
	"log/slog"
	"time"
)

// Default sheet titles of the three tables.
const (
	DefaultProductsSheet = "Products"
	DefaultUsersSheet    = "Users"
	DefaultOrdersSheet   = "Sales History"
)

// Config names the three sheets backing the store. Zero values fall back to
// the defaults above.
type Config struct {
	ProductsSheet string
	UsersSheet    string
	OrdersSheet   string
}

func (c *Config) applyDefaults() {
	if c.ProductsSheet == "" {
		c.ProductsSheet = DefaultProductsSheet
	}
	if c.UsersSheet == "" {
		c.UsersSheet = DefaultUsersSheet
	}
	if c.OrdersSheet == "" {
		c.OrdersSheet = DefaultOrdersSheet
	}
}

// Store is the data-access layer over one spreadsheet. It is safe for
// concurrent use; the only shared mutable state is the sheet-id cache.
type Store struct {
	backend Backend
	log     *slog.Logger
	cache   SheetIDCache
	now     func() time.Time

	products tableSchema
	users    tableSchema
	orders   tableSchema

	codec rowCodec
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithCache sets the sheet-id cache. Defaults to a fresh MapCache, so by
// default nothing is shared between two stores.
func WithCache(cache SheetIDCache) Option {
	return func(s *Store) { s.cache = cache }
}

// WithClock sets the time source used for timestamp fallbacks. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over the given backend.
func New(backend Backend, cfg Config, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("nil backend: %w", ErrNotConfigured)
	}
	cfg.applyDefaults()

	s := &Store{
		backend:  backend,
		log:      slog.Default(),
		now:      time.Now,
		products: newTableSchema(cfg.ProductsSheet, prodColCount),
		users:    newTableSchema(cfg.UsersSheet, userColCount),
		orders:   newTableSchema(cfg.OrdersSheet, orderColCount),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewMapCache()
	}
	s.codec = rowCodec{log: s.log, now: s.now}
	return s, nil
}

// writable gates every mutating operation. Without elevated credentials the
// refusal happens before any I/O, leaving no partial side effect.
func (s *Store) writable() error {
	if s.backend.ReadOnly() {
		return ErrReadOnly
	}
	return nil
}
