package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ThomasRolland/comptalib/internal/auth"
)

// SeedUsers provisions the fixture accounts used by the test suite and by
// fresh installs. Existing usernames are left untouched.
func SeedUsers(db *sql.DB) error {
	fixtures := []struct {
		username string
		password string
	}{
		{"John Doe", "root"},
		{"Tom Doe", "root"},
	}

	for _, f := range fixtures {
		hash, err := auth.HashPassword(f.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		now := time.Now()
		_, err = db.Exec(
			`INSERT OR IGNORE INTO users (username, password, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			f.username, hash, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed user %q: %w", f.username, err)
		}
	}

	return nil
}
