package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/repositories"
	"github.com/certsys/certdb/internal/pkg/filestorage"
)

// FileService maintains uploaded-file records and the storage directory
// backing them.
type FileService struct {
	files   repositories.IFileRepository
	users   repositories.IUserRepository
	storage *filestorage.LocalStorage
	logger  zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(files repositories.IFileRepository, users repositories.IUserRepository, storage *filestorage.LocalStorage, lgr zerolog.Logger) *FileService {
	return &FileService{files: files, users: users, storage: storage, logger: lgr}
}

// ListByAccount lists a user's file records, newest first.
func (s *FileService) ListByAccount(ctx context.Context, accountID string) ([]*models.File, error) {
	user, err := s.users.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.files.ListByUserID(ctx, user.UserID)
}

// Delete removes a file record and the stored file behind it. The record
// is removed first; a missing on-disk file is tolerated.
func (s *FileService) Delete(ctx context.Context, fileID int64) error {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return err
	}

	if err := s.storage.DeleteFile(file.FilePath); err != nil {
		// The record is gone; the leftover file will be caught by Prune.
		s.logger.Warn().Err(err).Str("path", file.FilePath).Msg("File record removed but stored file could not be deleted")
	}

	s.logger.Info().Int64("fileID", fileID).Msg("File deleted")
	return nil
}

// Prune removes on-disk files that have no matching record, returning the
// names it removed. With dryRun set it only reports them.
func (s *FileService) Prune(ctx context.Context, dryRun bool) ([]string, error) {
	referenced, err := s.files.AllPaths(ctx)
	if err != nil {
		return nil, err
	}

	orphans, err := s.storage.ListOrphans(referenced)
	if err != nil {
		return nil, err
	}

	if dryRun {
		return orphans, nil
	}

	for _, name := range orphans {
		if err := s.storage.DeleteFile(name); err != nil {
			return nil, err
		}
	}

	if len(orphans) > 0 {
		s.logger.Info().Int("removed", len(orphans)).Msg("Orphaned stored files pruned")
	}
	return orphans, nil
}
