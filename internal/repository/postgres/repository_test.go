package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNewSessionRepository(t *testing.T) {
	db := &Connection{}
	repo := NewSessionRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNewMarkRepository(t *testing.T) {
	db := &Connection{}
	repo := NewMarkRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}

	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(context.Background()))
}

func TestPgErrorCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: sessionsPrimaryKey}

	code, constraint := pgErrorCode(fmt.Errorf("insert: %w", pgErr))
	assert.Equal(t, pgUniqueViolation, code)
	assert.Equal(t, sessionsPrimaryKey, constraint)

	code, constraint = pgErrorCode(errors.New("plain"))
	assert.Empty(t, code)
	assert.Empty(t, constraint)
}
