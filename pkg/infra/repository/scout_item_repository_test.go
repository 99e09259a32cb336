package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation_MatchesPgconnError(t *testing.T) {
	err := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_item_guid"}

	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_MatchesWrappedError(t *testing.T) {
	// gorm returns driver errors wrapped; the check must see through it.
	err := fmt.Errorf("insert scout item: %w", &pgconn.PgError{Code: pgUniqueViolation})

	assert.True(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_IgnoresOtherPostgresErrors(t *testing.T) {
	err := &pgconn.PgError{Code: "23503"}

	assert.False(t, isUniqueViolation(err))
}

func TestIsUniqueViolation_IgnoresPlainErrors(t *testing.T) {
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}
