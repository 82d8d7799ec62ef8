package testutils

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThomasRolland/comptalib/db"
	"github.com/ThomasRolland/comptalib/internal/config"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func SetupTestDatabase(t *testing.T) (*sql.DB, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	testDB, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	require.NoError(t, err)

	err = db.InitializeSchema(testDB)
	require.NoError(t, err)

	cleanup := func() {
		testDB.Close()
		os.RemoveAll(tempDir)
	}

	return testDB, cleanup
}

func SetupTestRepositoryFactory(t *testing.T) (*db.RepositoryFactory, func()) {
	testDB, cleanup := SetupTestDatabase(t)
	factory := db.NewRepositoryFactory(testDB, "comptalib_test")
	return factory, cleanup
}

func GetTestConfig() *config.Config {
	return &config.Config{
		JwtKey:       []byte("test_jwt_secret_key_for_testing_only"),
		Port:         "0",
		DatabaseName: "comptalib_test",
		SQLitePath:   ":memory:",
	}
}
