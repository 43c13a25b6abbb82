package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/auth"
	"github.com/certsys/certdb/internal/pkg/validation"
)

// CreateUserInput carries the fields needed to provision a user account.
type CreateUserInput struct {
	AccountID  string
	Name       string
	Role       string
	Department string
	Email      string
	Password   string
	CreatedBy  models.CreatedBy
}

// UserService implements user provisioning and account maintenance.
type UserService struct {
	users  repositories.IUserRepository
	logger zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repositories.IUserRepository, lgr zerolog.Logger) *UserService {
	return &UserService{users: users, logger: lgr}
}

// ValidateInput checks a creation request against the account rules without
// touching the database. Used by both direct creation and batch import.
func (s *UserService) ValidateInput(in CreateUserInput) error {
	role := models.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	if !role.Valid() {
		return apperrors.ErrInvalidRole
	}
	if !validation.ValidAccountID(in.AccountID, string(role)) {
		return apperrors.ErrInvalidAccountID
	}
	if in.Name == "" || in.Department == "" {
		return apperrors.NewValidationError("name and department are required")
	}
	if !validation.ValidEmail(in.Email) {
		return apperrors.ErrInvalidEmail
	}
	if !validation.ValidPassword(in.Password) {
		return apperrors.ErrInvalidPassword
	}
	return nil
}

// Create validates and inserts a new user, returning the stored model.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := s.ValidateInput(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	createdBy := in.CreatedBy
	if createdBy == "" {
		createdBy = models.CreatedBySelfRegister
	}

	user := &models.User{
		AccountID:    strings.TrimSpace(in.AccountID),
		Name:         strings.TrimSpace(in.Name),
		Role:         models.Role(strings.ToLower(strings.TrimSpace(in.Role))),
		Department:   strings.TrimSpace(in.Department),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hash,
		IsActive:     true,
		CreatedBy:    createdBy,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserID = id

	s.logger.Info().Str("accountID", user.AccountID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// List retrieves users, optionally restricted to a role.
func (s *UserService) List(ctx context.Context, roleFilter string) ([]*models.User, error) {
	if roleFilter == "" {
		return s.users.List(ctx, nil)
	}

	role := models.Role(strings.ToLower(roleFilter))
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.users.List(ctx, &role)
}

// SetActive enables or disables an account by its identifier.
func (s *UserService) SetActive(ctx context.Context, accountID string, active bool) error {
	if err := s.users.SetActive(ctx, accountID, active); err != nil {
		return err
	}
	s.logger.Info().Str("accountID", accountID).Bool("active", active).Msg("User status updated")
	return nil
}

// ResetPassword regenerates the stored hash for an account from a new
// plaintext password. Used to recover the bootstrap admin account.
func (s *UserService) ResetPassword(ctx context.Context, accountID, newPassword string) error {
	if !validation.ValidPassword(newPassword) {
		return apperrors.ErrInvalidPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, accountID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("accountID", accountID).Msg("Password reset")
	return nil
}

// GetByAccountID retrieves a single user.
func (s *UserService) GetByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	return s.users.GetByAccountID(ctx, accountID)
}
