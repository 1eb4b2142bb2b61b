package dbmetrics

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCollector struct {
	mu         sync.Mutex
	operations []string
	errs       []error
	poolCalls  int
}

func (c *recordingCollector) ObserveQuery(_ string, operation string, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operations = append(c.operations, operation)
	c.errs = append(c.errs, err)
}

func (c *recordingCollector) SetPoolStats(_ string, _ sql.DBStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.poolCalls++
}

func (c *recordingCollector) pool() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poolCalls
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("SELECT id FROM rides"))
	assert.Equal(t, "update", Operation("  update rides SET x = 1"))
	assert.Equal(t, "other", Operation("WITH x AS (SELECT 1) SELECT * FROM x"))
	assert.Equal(t, "unknown", Operation(""))
}

func TestGetExecutorPrefersTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	wrapped := Wrap(db, nil, "test")
	txCtx := WithTx(ctx, wrapped)
	assert.Same(t, wrapped, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestDBObservesQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	collector := &recordingCollector{}
	wrapped := Wrap(db, collector, "rides")

	mock.ExpectExec("UPDATE rides").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM rides").WillReturnError(sql.ErrConnDone)

	_, err = wrapped.ExecContext(context.Background(), "UPDATE rides SET passenger_count = 1")
	require.NoError(t, err)
	_, err = wrapped.QueryContext(context.Background(), "SELECT id FROM rides")
	require.Error(t, err)

	assert.Equal(t, []string{"update", "select"}, collector.operations)
	assert.NoError(t, collector.errs[0])
	assert.ErrorIs(t, collector.errs[1], sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstrumentedTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	collector := &recordingCollector{}
	wrapped := Wrap(db, collector, "rides")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = wrapped.WrapTx(tx).ExecContext(context.Background(), "DELETE FROM bookings WHERE id = $1", 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"delete"}, collector.operations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolStatsStopOnChannelClose(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	collector := &recordingCollector{}
	wrapped := Wrap(db, collector, "rides")

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		wrapped.collectPoolStats(5*time.Millisecond, stop)
		close(done)
	}()

	require.Eventually(t, func() bool { return collector.pool() >= 2 }, time.Second, 5*time.Millisecond)
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pool stats loop did not stop")
	}
}
