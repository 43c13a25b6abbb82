package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/dberrors"
)

// Unique constraint names created by the initial migration.
const (
	constraintUsersAccountID = "users_account_id_key"
	constraintUsersEmail     = "users_email_key"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByAccountID(ctx context.Context, accountID string) (*models.User, error)
	AccountExists(ctx context.Context, accountID string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, role *models.Role) ([]*models.User, error)
	SetActive(ctx context.Context, accountID string, active bool) error
	UpdatePasswordHash(ctx context.Context, accountID, passwordHash string) error
	Count(ctx context.Context) (int64, error)
	CountByAccountID(ctx context.Context, accountID string) (int64, error)
}

// UserRepository handles database operations for the users table
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns the assigned user_id. Unique
// violations are mapped to the account/email sentinel errors.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (account_id, name, role, department, email, password_hash, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id`,
		user.AccountID, user.Name, user.Role, user.Department, user.Email,
		user.PasswordHash, user.IsActive, user.CreatedBy).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintUsersAccountID) {
			return 0, apperrors.ErrAccountAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, constraintUsersEmail) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsCheckViolation(err) {
			return 0, apperrors.ErrInvalidRole
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByAccountID retrieves a user by institutional account identifier
func (r *UserRepository) GetByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT user_id, account_id, name, role, department, email, password_hash, is_active, created_at, created_by
		FROM users
		WHERE account_id = $1`,
		accountID).Scan(
		&user.UserID, &user.AccountID, &user.Name, &user.Role, &user.Department,
		&user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.CreatedBy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// AccountExists checks if an account identifier is already taken
func (r *UserRepository) AccountExists(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE account_id = $1)`,
		accountID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking account: %w", err)
	}

	return exists, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// List retrieves users, optionally filtered by role, ordered by account id.
func (r *UserRepository) List(ctx context.Context, role *models.Role) ([]*models.User, error) {
	query := `
		SELECT user_id, account_id, name, role, department, email, password_hash, is_active, created_at, created_by
		FROM users`
	args := []interface{}{}
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY account_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.UserID, &user.AccountID, &user.Name, &user.Role, &user.Department,
			&user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.CreatedBy); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// SetActive enables or disables an account
func (r *UserRepository) SetActive(ctx context.Context, accountID string, active bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET is_active = $1 WHERE account_id = $2`,
		active, accountID)

	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash for an account
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET password_hash = $1 WHERE account_id = $2`,
		passwordHash, accountID)

	if err != nil {
		return fmt.Errorf("error updating password hash: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Count returns the total number of user rows
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CountByAccountID returns how many rows carry the given account id.
// The unique constraint keeps this at 0 or 1; the verify command uses it
// to assert seed correctness.
func (r *UserRepository) CountByAccountID(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users by account: %w", err)
	}
	return count, nil
}
