package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "users_account_id_key"}

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsCheckViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "files_user_id_fkey"}

	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))
}

func TestIsCheckViolation(t *testing.T) {
	err := &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "users_role_check"}

	assert.True(t, IsCheckViolation(err))
}

func TestWrappedErrors(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "system_config_config_key_key"}
	wrapped := fmt.Errorf("error seeding config: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped))
	assert.True(t, IsDuplicateConstraintError(wrapped, "system_config_config_key_key"))
	assert.False(t, IsDuplicateConstraintError(wrapped, "users_email_key"))
	assert.Equal(t, "system_config_config_key_key", ConstraintName(wrapped))
}

func TestNonPgError(t *testing.T) {
	err := errors.New("plain error")

	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsCheckViolation(err))
	assert.Empty(t, ConstraintName(err))
}
