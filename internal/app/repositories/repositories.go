package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all table repositories for dependency injection.
type Repositories struct {
	UserRepository        *UserRepository
	FileRepository        *FileRepository
	ConfigRepository      *ConfigRepository
	CertificateRepository *CertificateRepository
}

// NewRepositories creates the repository container from a shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		FileRepository:        NewFileRepository(db),
		ConfigRepository:      NewConfigRepository(db),
		CertificateRepository: NewCertificateRepository(db),
	}
}
