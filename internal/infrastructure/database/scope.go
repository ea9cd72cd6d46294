package database

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"
)

var ErrNoScope = errors.New("no connection scope in context")

type scopeKey struct{}

// AcquireFunc checks a dedicated connection out of the pool. The returned
// closer hands it back.
type AcquireFunc func(ctx context.Context) (*gorm.DB, io.Closer, error)

// Scope holds at most one connection for the lifetime of a single request.
// It is not safe for concurrent use; a request is served by one goroutine.
type Scope struct {
	acquire AcquireFunc
	db      *gorm.DB
	closer  io.Closer
}

func NewScope(acquire AcquireFunc) *Scope {
	return &Scope{acquire: acquire}
}

// DB returns the scope's connection, acquiring it on first use.
func (s *Scope) DB(ctx context.Context) (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	db, closer, err := s.acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	s.db = db
	s.closer = closer
	return db, nil
}

// Close releases the held connection, if any. It is safe to call more
// than once.
func (s *Scope) Close() error {
	if s.closer == nil {
		return nil
	}

	err := s.closer.Close()
	s.db = nil
	s.closer = nil
	return err
}

func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*Scope)
	return scope, ok
}

// Accessor hands out request scopes backed by the shared pool.
type Accessor struct {
	acquire AcquireFunc
}

// NewAccessor builds scopes whose connections come from base's pool. Each
// acquired connection is bound to a fresh gorm session.
func NewAccessor(base *gorm.DB) (*Accessor, error) {
	sqlDB, err := base.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	acquire := func(ctx context.Context) (*gorm.DB, io.Closer, error) {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			return nil, nil, err
		}

		tx := base.Session(&gorm.Session{NewDB: true, Context: ctx})
		tx.Statement.ConnPool = conn
		return tx, conn, nil
	}

	return &Accessor{acquire: acquire}, nil
}

func NewAccessorWithAcquire(acquire AcquireFunc) *Accessor {
	return &Accessor{acquire: acquire}
}

func (a *Accessor) NewScope() *Scope {
	return NewScope(a.acquire)
}

// Connector resolves the connection of the request carried by ctx.
type Connector interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

type scopedConnector struct{}

// NewScopedConnector returns a Connector that only works inside a request
// wrapped by the scope middleware.
func NewScopedConnector() Connector {
	return scopedConnector{}
}

func (scopedConnector) DB(ctx context.Context) (*gorm.DB, error) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrNoScope
	}
	return scope.DB(ctx)
}
