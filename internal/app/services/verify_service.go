package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/config"
	"github.com/certsys/certdb/internal/pkg/helpers"
)

// CheckResult is the outcome of a single provisioning check.
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// VerifyService runs read-only checks confirming the database holds the
// expected bootstrap data.
type VerifyService struct {
	users   repositories.IUserRepository
	configs repositories.IConfigRepository
	cfg     *config.Config
	logger  zerolog.Logger
}

// NewVerifyService creates a new VerifyService
func NewVerifyService(users repositories.IUserRepository, configs repositories.IConfigRepository, cfg *config.Config, lgr zerolog.Logger) *VerifyService {
	return &VerifyService{users: users, configs: configs, cfg: cfg, logger: lgr}
}

// Run executes all checks and reports whether every one passed.
func (s *VerifyService) Run(ctx context.Context) ([]CheckResult, bool, error) {
	var results []CheckResult

	adminCheck, err := s.checkAdminUser(ctx)
	if err != nil {
		return nil, false, err
	}
	results = append(results, adminCheck)

	deadlineCheck, err := s.checkDeadline(ctx)
	if err != nil {
		return nil, false, err
	}
	results = append(results, deadlineCheck)

	allOK := true
	for _, r := range results {
		if !r.OK {
			allOK = false
		}
	}
	return results, allOK, nil
}

func (s *VerifyService) checkAdminUser(ctx context.Context) (CheckResult, error) {
	result := CheckResult{Name: "admin user"}
	accountID := s.cfg.Seed.AdminAccountID

	count, err := s.users.CountByAccountID(ctx, accountID)
	if err != nil {
		return result, err
	}
	if count != 1 {
		result.Detail = fmt.Sprintf("expected exactly one user with account ID %s, found %d", accountID, count)
		return result, nil
	}

	admin, err := s.users.GetByAccountID(ctx, accountID)
	if err != nil {
		return result, err
	}
	if admin.Role != models.RoleAdmin {
		result.Detail = fmt.Sprintf("user %s has role %s, want %s", accountID, admin.Role, models.RoleAdmin)
		return result, nil
	}
	if !admin.IsActive {
		result.Detail = fmt.Sprintf("user %s is deactivated", accountID)
		return result, nil
	}

	result.OK = true
	result.Detail = fmt.Sprintf("user %s present with role %s", accountID, admin.Role)
	return result, nil
}

func (s *VerifyService) checkDeadline(ctx context.Context) (CheckResult, error) {
	result := CheckResult{Name: "submission deadline"}

	count, err := s.configs.CountByKey(ctx, models.ConfigKeySubmissionDeadline)
	if err != nil {
		return result, err
	}
	if count != 1 {
		result.Detail = fmt.Sprintf("expected exactly one %s row, found %d", models.ConfigKeySubmissionDeadline, count)
		return result, nil
	}

	entry, err := s.configs.Get(ctx, models.ConfigKeySubmissionDeadline)
	if err != nil {
		return result, err
	}
	deadline, err := helpers.ParseDeadline(entry.ConfigValue)
	if err != nil {
		result.Detail = fmt.Sprintf("deadline value %q is not in format %s", entry.ConfigValue, helpers.DeadlineLayout)
		return result, nil
	}

	result.OK = true
	result.Detail = fmt.Sprintf("deadline set to %s", helpers.FormatDeadline(deadline))
	return result, nil
}
