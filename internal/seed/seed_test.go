package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/config"
	"github.com/certsys/certdb/internal/pkg/auth"
)

type stubUserRepo struct {
	repositories.IUserRepository
	existing map[string]bool
	created  []*models.User
}

func (s *stubUserRepo) AccountExists(_ context.Context, accountID string) (bool, error) {
	return s.existing[accountID], nil
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	s.created = append(s.created, user)
	s.existing[user.AccountID] = true
	return int64(len(s.created)), nil
}

type stubConfigRepo struct {
	repositories.IConfigRepository
	values map[string]string
}

func (s *stubConfigRepo) SeedDefault(_ context.Context, key, value, _ string) (bool, error) {
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value
	return true, nil
}

func newSeederForTest(users *stubUserRepo, configs *stubConfigRepo) *Seeder {
	cfg, err := config.LoadConfig("does-not-exist.yaml")
	if err != nil {
		panic(err)
	}
	return NewSeeder(users, configs, cfg, zerolog.Nop())
}

func TestSeederCreatesDefaults(t *testing.T) {
	users := &stubUserRepo{existing: map[string]bool{}}
	configs := &stubConfigRepo{values: map[string]string{}}

	err := newSeederForTest(users, configs).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	admin := users.created[0]
	assert.Equal(t, "admin00000000", admin.AccountID)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.CreatedBySystem, admin.CreatedBy)
	assert.True(t, admin.IsActive)

	// the stored hash is a real bcrypt hash of the bootstrap password,
	// never a copied literal
	assert.NotEqual(t, "Admin123456", admin.PasswordHash)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "Admin123456"))

	assert.Equal(t, "2025-12-31 23:59:59", configs.values[models.ConfigKeySubmissionDeadline])
}

func TestSeederIsIdempotent(t *testing.T) {
	users := &stubUserRepo{existing: map[string]bool{}}
	configs := &stubConfigRepo{values: map[string]string{}}
	seeder := newSeederForTest(users, configs)

	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	assert.Len(t, users.created, 1, "second run must not create a second admin")
	assert.Len(t, configs.values, 1)
}

func TestSeederKeepsExistingDeadline(t *testing.T) {
	users := &stubUserRepo{existing: map[string]bool{"admin00000000": true}}
	configs := &stubConfigRepo{values: map[string]string{
		models.ConfigKeySubmissionDeadline: "2026-06-30 12:00:00",
	}}

	err := newSeederForTest(users, configs).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, users.created)
	assert.Equal(t, "2026-06-30 12:00:00", configs.values[models.ConfigKeySubmissionDeadline],
		"seeder must not overwrite an operator-set deadline")
}
