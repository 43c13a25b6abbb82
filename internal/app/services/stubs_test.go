package services

import (
	"context"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/apperrors"
)

// fakeUserRepo is an in-memory IUserRepository keyed by account ID.
type fakeUserRepo struct {
	repositories.IUserRepository
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	if _, ok := f.users[user.AccountID]; ok {
		return 0, apperrors.ErrAccountAlreadyExists
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.UserID = f.nextID
	f.users[user.AccountID] = user
	return f.nextID, nil
}

func (f *fakeUserRepo) GetByAccountID(_ context.Context, accountID string) (*models.User, error) {
	user, ok := f.users[accountID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) AccountExists(_ context.Context, accountID string) (bool, error) {
	_, ok := f.users[accountID]
	return ok, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(_ context.Context, role *models.Role) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, accountID string, active bool) error {
	user, ok := f.users[accountID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, accountID, passwordHash string) error {
	user, ok := f.users[accountID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) CountByAccountID(_ context.Context, accountID string) (int64, error) {
	if _, ok := f.users[accountID]; ok {
		return 1, nil
	}
	return 0, nil
}

// fakeConfigRepo is an in-memory IConfigRepository.
type fakeConfigRepo struct {
	repositories.IConfigRepository
	rows map[string]*models.SystemConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{rows: map[string]*models.SystemConfig{}}
}

func (f *fakeConfigRepo) Get(_ context.Context, key string) (*models.SystemConfig, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, apperrors.ErrConfigKeyNotFound
	}
	return row, nil
}

func (f *fakeConfigRepo) List(_ context.Context) ([]*models.SystemConfig, error) {
	var out []*models.SystemConfig
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, key, value string, description *string, updatedBy *int64) error {
	row, ok := f.rows[key]
	if !ok {
		row = &models.SystemConfig{ConfigID: int64(len(f.rows) + 1), ConfigKey: key}
		f.rows[key] = row
	}
	row.ConfigValue = value
	if description != nil {
		row.Description = description
	}
	row.UpdatedBy = updatedBy
	return nil
}

func (f *fakeConfigRepo) CountByKey(_ context.Context, key string) (int64, error) {
	if _, ok := f.rows[key]; ok {
		return 1, nil
	}
	return 0, nil
}
