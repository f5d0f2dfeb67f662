package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert vote: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

type fakePinger struct {
	err   error
	stats sql.DBStats
}

func (f fakePinger) PingContext(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping without deadline")
	}
	return f.err
}

func (f fakePinger) Stats() sql.DBStats { return f.stats }

func TestCheckHealth(t *testing.T) {
	up := checkHealth(context.Background(), fakePinger{stats: sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2, WaitCount: 7}})
	assert.True(t, up.Up())
	assert.Equal(t, HealthReport{Status: StatusUp, OpenConnections: 3, InUse: 1, Idle: 2, WaitCount: 7, LatencyMS: up.LatencyMS}, up)

	down := checkHealth(context.Background(), fakePinger{err: errors.New("connection refused")})
	assert.False(t, down.Up())
	assert.Equal(t, StatusDown, down.Status)
	assert.Equal(t, "connection refused", down.Error)
	assert.Zero(t, down.OpenConnections)
}
