package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/pkg/apperrors"
	"github.com/certsys/certdb/internal/pkg/auth"
)

func validStudentInput() CreateUserInput {
	return CreateUserInput{
		AccountID:  "2025000000001",
		Name:       "Zhang San",
		Role:       "student",
		Department: "School of Computer Science",
		Email:      "zhangsan@school.edu.cn",
		Password:   "Passw0rd1",
	}
}

func TestUserServiceCreate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), validStudentInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, models.CreatedBySelfRegister, user.CreatedBy)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "Passw0rd1"))
}

func TestUserServiceCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateUserInput)
		wantErr error
	}{
		{"bad role", func(in *CreateUserInput) { in.Role = "dean" }, apperrors.ErrInvalidRole},
		{"student ID too short", func(in *CreateUserInput) { in.AccountID = "20250001" }, apperrors.ErrInvalidAccountID},
		{"non-numeric ID", func(in *CreateUserInput) { in.AccountID = "20250000000ab" }, apperrors.ErrInvalidAccountID},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, apperrors.ErrInvalidEmail},
		{"short password", func(in *CreateUserInput) { in.Password = "Ab1" }, apperrors.ErrInvalidPassword},
		{"digits-only password", func(in *CreateUserInput) { in.Password = "12345678" }, apperrors.ErrInvalidPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := NewUserService(repo, zerolog.Nop())

			in := validStudentInput()
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, repo.users)
		})
	}
}

func TestUserServiceCreateStaffAccountID(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	in := validStudentInput()
	in.Role = "teacher"
	in.AccountID = "88888889"
	in.Email = "lisi@school.edu.cn"

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	// A 13-digit student number is not a valid staff identifier.
	in.AccountID = "2025000000002"
	in.Email = "other@school.edu.cn"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAccountID)
}

func TestUserServiceCreateDuplicateAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), validStudentInput())
	require.NoError(t, err)

	in := validStudentInput()
	in.Email = "different@school.edu.cn"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrAccountAlreadyExists)
}

func TestUserServiceListRoleFilter(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), validStudentInput())
	require.NoError(t, err)

	staff := validStudentInput()
	staff.Role = "teacher"
	staff.AccountID = "88888889"
	staff.Email = "lisi@school.edu.cn"
	_, err = svc.Create(context.Background(), staff)
	require.NoError(t, err)

	students, err := svc.List(context.Background(), "student")
	require.NoError(t, err)
	assert.Len(t, students, 1)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.List(context.Background(), "janitor")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestUserServiceSetActive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), validStudentInput())
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(context.Background(), user.AccountID, false))
	got, err := svc.GetByAccountID(context.Background(), user.AccountID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	err = svc.SetActive(context.Background(), "0000000000000", true)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserServiceResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	user, err := svc.Create(context.Background(), validStudentInput())
	require.NoError(t, err)
	oldHash := user.PasswordHash

	require.NoError(t, svc.ResetPassword(context.Background(), user.AccountID, "NewPassw0rd"))

	got, err := svc.GetByAccountID(context.Background(), user.AccountID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, got.PasswordHash)
	assert.True(t, auth.CheckPassword(got.PasswordHash, "NewPassw0rd"))

	err = svc.ResetPassword(context.Background(), user.AccountID, "short")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}
