package database

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCloser struct {
	closed int
	err    error
}

func (c *fakeCloser) Close() error {
	c.closed++
	return c.err
}

type fakePool struct {
	acquired int
	closers  []*fakeCloser
	err      error
}

func (p *fakePool) acquire(ctx context.Context) (*gorm.DB, io.Closer, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	p.acquired++
	c := &fakeCloser{}
	p.closers = append(p.closers, c)
	return &gorm.DB{}, c, nil
}

func TestScope_LazyAcquire(t *testing.T) {
	pool := &fakePool{}
	scope := NewScope(pool.acquire)

	require.NoError(t, scope.Close())
	assert.Equal(t, 0, pool.acquired)
	assert.Empty(t, pool.closers)
}

func TestScope_ReusesConnectionWithinRequest(t *testing.T) {
	pool := &fakePool{}
	scope := NewScope(pool.acquire)
	ctx := context.Background()

	first, err := scope.DB(ctx)
	require.NoError(t, err)
	second, err := scope.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, pool.acquired)
	assert.Equal(t, 0, pool.closers[0].closed)
}

func TestScope_CloseReleasesOnce(t *testing.T) {
	pool := &fakePool{}
	scope := NewScope(pool.acquire)

	_, err := scope.DB(context.Background())
	require.NoError(t, err)

	require.NoError(t, scope.Close())
	require.NoError(t, scope.Close())

	require.Len(t, pool.closers, 1)
	assert.Equal(t, 1, pool.closers[0].closed)
}

func TestScope_ReacquiresAfterClose(t *testing.T) {
	pool := &fakePool{}
	scope := NewScope(pool.acquire)
	ctx := context.Background()

	_, err := scope.DB(ctx)
	require.NoError(t, err)
	require.NoError(t, scope.Close())
	_, err = scope.DB(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, pool.acquired)
	assert.Equal(t, 1, pool.closers[0].closed)
	assert.Equal(t, 0, pool.closers[1].closed)
}

func TestScope_AcquireError(t *testing.T) {
	pool := &fakePool{err: errors.New("pool exhausted")}
	scope := NewScope(pool.acquire)

	db, err := scope.DB(context.Background())

	assert.Nil(t, db)
	assert.ErrorIs(t, err, pool.err)
	require.NoError(t, scope.Close())
}

func TestScopedConnector_RequiresScope(t *testing.T) {
	connector := NewScopedConnector()

	_, err := connector.DB(context.Background())
	assert.ErrorIs(t, err, ErrNoScope)

	pool := &fakePool{}
	scope := NewAccessorWithAcquire(pool.acquire).NewScope()
	ctx := WithScope(context.Background(), scope)

	db, err := connector.DB(ctx)
	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.Equal(t, 1, pool.acquired)
}
