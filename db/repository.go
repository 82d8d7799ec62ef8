package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ThomasRolland/comptalib/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// ConstraintError carries the message of the first violated store-level
// constraint, e.g. a duplicate username. Handlers surface the message
// verbatim to the caller.
type ConstraintError struct {
	Message string
}

func (e *ConstraintError) Error() string {
	return e.Message
}

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// UserRepository defines the interface for user operations
type UserRepository interface {
	Repository
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int, user *models.User) error
	DeleteByID(ctx context.Context, id int) (int64, error)
}

// CompanyRepository defines the interface for company operations
type CompanyRepository interface {
	Repository
	FindAll(ctx context.Context) ([]*models.Company, error)
	FindByID(ctx context.Context, id int) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Update(ctx context.Context, id int, company *models.Company) error
	DeleteByID(ctx context.Context, id int) (int64, error)
	AddUser(ctx context.Context, companyID, userID int) error
}

// RepositoryFactory creates repositories backed by the shared connection
type RepositoryFactory struct {
	SQLiteDB *sql.DB
	DBName   string
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(sqliteDB *sql.DB, dbName string) *RepositoryFactory {
	return &RepositoryFactory{
		SQLiteDB: sqliteDB,
		DBName:   dbName,
	}
}

// NewUserRepository creates a new user repository
func (f *RepositoryFactory) NewUserRepository() UserRepository {
	return NewSQLiteUserRepository(f.SQLiteDB)
}

// NewCompanyRepository creates a new company repository
func (f *RepositoryFactory) NewCompanyRepository() CompanyRepository {
	return NewSQLiteCompanyRepository(f.SQLiteDB)
}
