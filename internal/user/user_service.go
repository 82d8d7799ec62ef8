package user

import (
	"context"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/models"
)

type UserService struct {
	Repo db.UserRepository
}

func NewUserService(repo db.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

// FindAll returns every user with their companies attached.
func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.Repo.FindAll(ctx)
}

// FindByID returns one user with companies attached, or nil if absent.
func (s *UserService) FindByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err == db.ErrNotFound {
		return nil, nil
	}
	return user, err
}

// Register creates a user, storing a bcrypt hash of the password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.Repo.Create(ctx, &models.User{
		Username: username,
		Password: hash,
	})
}

// Update applies a partial update and returns the row state afterwards,
// nil if no row matched.
func (s *UserService) Update(ctx context.Context, id int, username, password string) (*models.User, error) {
	update := &models.User{Username: username}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		update.Password = hash
	}

	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return s.FindByID(ctx, id)
}

// Delete removes a user by id and returns the number of rows removed.
func (s *UserService) Delete(ctx context.Context, id int) (int64, error) {
	return s.Repo.DeleteByID(ctx, id)
}
