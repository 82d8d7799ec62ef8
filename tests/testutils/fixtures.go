package testutils

import (
	"context"
	"testing"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/auth"
	"github.com/ThomasRolland/comptalib/models"

	"github.com/stretchr/testify/require"
)

func CreateTestUser(t *testing.T, repo db.UserRepository, username, password string) *models.User {
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user, err := repo.Create(context.Background(), &models.User{
		Username: username,
		Password: hash,
	})
	require.NoError(t, err)
	return user
}

func CreateTestCompany(t *testing.T, repo db.CompanyRepository, name string, zipCode int) *models.Company {
	company, err := repo.Create(context.Background(), &models.Company{
		Name:    name,
		ZipCode: &zipCode,
	})
	require.NoError(t, err)
	return company
}
