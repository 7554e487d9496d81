package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusWithoutDependencies(t *testing.T) {
	report := NewService(nil, nil).Status(context.Background())
	assert.True(t, report.OK)
	assert.Empty(t, report.Checks)
}

func TestStatusPingsDependencies(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing()

	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	report := NewService(db, rdb).Status(context.Background())
	assert.True(t, report.OK)
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "ok"}, report.Checks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusReportsFailures(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	report := NewService(db, nil).Status(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, "connection refused", report.Checks["postgres"])
}
