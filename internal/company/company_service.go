package company

import (
	"context"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/models"
)

type CompanyService struct {
	Repo  db.CompanyRepository
	Users db.UserRepository
}

func NewCompanyService(repo db.CompanyRepository, users db.UserRepository) *CompanyService {
	return &CompanyService{Repo: repo, Users: users}
}

// FindAll returns every company with its users attached.
func (s *CompanyService) FindAll(ctx context.Context) ([]*models.Company, error) {
	return s.Repo.FindAll(ctx)
}

// FindByID returns one company with users attached, or nil if absent.
func (s *CompanyService) FindByID(ctx context.Context, id int) (*models.Company, error) {
	company, err := s.Repo.FindByID(ctx, id)
	if err == db.ErrNotFound {
		return nil, nil
	}
	return company, err
}

// Create inserts a new company.
func (s *CompanyService) Create(ctx context.Context, name string, zipCode *int) (*models.Company, error) {
	return s.Repo.Create(ctx, &models.Company{
		Name:    name,
		ZipCode: zipCode,
	})
}

// Update applies a partial update and returns the row state afterwards,
// nil if no row matched.
func (s *CompanyService) Update(ctx context.Context, id int, name string, zipCode *int) (*models.Company, error) {
	update := &models.Company{Name: name, ZipCode: zipCode}
	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes a company by id and returns the number of rows removed.
func (s *CompanyService) Delete(ctx context.Context, id int) (int64, error) {
	return s.Repo.DeleteByID(ctx, id)
}

// AddUsers links each listed user to the company, one by one. Per-user
// lookup failures do not abort the loop; the ids that could not be linked
// come back in the second return value so the caller can report them.
func (s *CompanyService) AddUsers(ctx context.Context, companyID int, userIDs []int) (*models.Company, []int, error) {
	if _, err := s.Repo.FindByID(ctx, companyID); err != nil {
		return nil, nil, err
	}

	var failed []int
	for _, userID := range userIDs {
		if _, err := s.Users.FindByID(ctx, userID); err != nil {
			failed = append(failed, userID)
			continue
		}
		if err := s.Repo.AddUser(ctx, companyID, userID); err != nil {
			failed = append(failed, userID)
		}
	}

	company, err := s.Repo.FindByID(ctx, companyID)
	if err != nil {
		return nil, failed, err
	}

	return company, failed, nil
}
