package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orders-api/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dbx := sqlx.NewDb(db, "mysql")
	ConfigurePool(dbx, 5)
	return NewGateway(dbx, 0, logger.NewWithWriter("test", io.Discard)), mock
}

func TestGateway_QueryNormalizesRows(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery("SELECT * FROM orders WHERE ORD_NUM = ?").
		WithArgs(int64(200100)).
		WillReturnRows(sqlmock.NewRows([]string{"ord_num", "ORD_DESCRIPTION"}).
			AddRow(int64(200100), []byte("SOD")))

	rows, err := gw.Query(context.Background(), "SELECT * FROM orders WHERE ORD_NUM = ?", int64(200100))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(200100), rows[0]["ORD_NUM"])
	assert.Equal(t, "SOD", rows[0]["ORD_DESCRIPTION"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_QueryEmptyIsNonNil(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectQuery("SELECT * FROM agents").
		WillReturnRows(sqlmock.NewRows([]string{"AGENT_CODE"}))

	rows, err := gw.Query(context.Background(), "SELECT * FROM agents")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGateway_FailureIsDatabaseErrorAndReleasesConn(t *testing.T) {
	gw, mock := newMockGateway(t)
	boom := errors.New("Duplicate entry '200100' for key 'PRIMARY'")

	mock.ExpectExec("DELETE FROM orders WHERE ORD_NUM = ?").
		WithArgs(int64(1)).
		WillReturnError(boom)

	_, err := gw.Exec(context.Background(), "DELETE FROM orders WHERE ORD_NUM = ?", int64(1))
	require.Error(t, err)

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "exec", dbErr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, gw.DB().Stats().InUse, "connection must go back to the pool")
}

func TestGateway_ExecReportsRowsAffected(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec("UPDATE orders SET ORD_AMOUNT = ? WHERE ORD_NUM = ?").
		WithArgs("500", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := gw.Exec(context.Background(), "UPDATE orders SET ORD_AMOUNT = ? WHERE ORD_NUM = ?", "500", int64(7))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_QueryRebindsForPostgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	gw := NewGateway(sqlx.NewDb(db, "pgx"), 0, logger.NewWithWriter("test", io.Discard))

	mock.ExpectQuery("SELECT * FROM orders WHERE ORD_NUM = $1").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"ord_num"}))

	_, err = gw.Query(context.Background(), "SELECT * FROM orders WHERE ORD_NUM = ?", int64(3))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// blockingConnector hands out connections whose queries park until release is closed.
type blockingConnector struct {
	release  chan struct{}
	opened   atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (c *blockingConnector) Connect(context.Context) (driver.Conn, error) {
	c.opened.Add(1)
	return &blockingConn{c: c}, nil
}

func (c *blockingConnector) Driver() driver.Driver { return blockingDriver{c} }

type blockingDriver struct{ c *blockingConnector }

func (d blockingDriver) Open(string) (driver.Conn, error) { return d.c.Connect(context.Background()) }

type blockingConn struct{ c *blockingConnector }

func (bc *blockingConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (bc *blockingConn) Close() error                        { return nil }
func (bc *blockingConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func (bc *blockingConn) QueryContext(ctx context.Context, _ string, _ []driver.NamedValue) (driver.Rows, error) {
	n := bc.c.inFlight.Add(1)
	defer bc.c.inFlight.Add(-1)
	for {
		seen := bc.c.maxSeen.Load()
		if n <= seen || bc.c.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	select {
	case <-bc.c.release:
		return &emptyRows{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type emptyRows struct{}

func (emptyRows) Columns() []string         { return []string{"ORD_NUM"} }
func (emptyRows) Close() error              { return nil }
func (emptyRows) Next([]driver.Value) error { return io.EOF }

func TestGateway_RequestsBeyondPoolCapacityQueue(t *testing.T) {
	const (
		poolSize = 5
		callers  = 12
	)
	conn := &blockingConnector{release: make(chan struct{})}
	dbx := sqlx.NewDb(sql.OpenDB(conn), "mysql")
	ConfigurePool(dbx, poolSize)
	defer dbx.Close()
	gw := NewGateway(dbx, 0, logger.NewWithWriter("test", io.Discard))

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.Query(context.Background(), "SELECT * FROM orders")
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		return conn.inFlight.Load() == poolSize && dbx.Stats().WaitCount >= callers-poolSize
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(poolSize), conn.inFlight.Load())

	close(conn.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, conn.maxSeen.Load(), int32(poolSize))
	assert.LessOrEqual(t, conn.opened.Load(), int32(poolSize))
	assert.Zero(t, dbx.Stats().InUse)
}

func TestGateway_QueuedCallerGivesUpWithContext(t *testing.T) {
	conn := &blockingConnector{release: make(chan struct{})}
	dbx := sqlx.NewDb(sql.OpenDB(conn), "mysql")
	ConfigurePool(dbx, 1)
	defer dbx.Close()
	gw := NewGateway(dbx, 0, logger.NewWithWriter("test", io.Discard))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = gw.Query(context.Background(), "SELECT * FROM orders")
	}()
	require.Eventually(t, func() bool { return conn.inFlight.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := gw.Query(ctx, "SELECT * FROM orders")

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "acquire", dbErr.Op)

	close(conn.release)
	<-done
}
