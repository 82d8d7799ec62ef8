package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ThomasRolland/comptalib/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// constraintMessage maps a SQLite constraint violation on the given column
// to the message exposed by the API contract. Other errors pass through.
func constraintMessage(err error, column, message string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if strings.Contains(sqliteErr.Error(), column) {
			return &ConstraintError{Message: message}
		}
		return &ConstraintError{Message: sqliteErr.Error()}
	}
	return err
}

// SQLiteUserRepository implements the UserRepository interface for SQLite
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	var password sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&user.ID, &user.Username, &password, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if password.Valid {
		user.Password = password.String
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}

	return &user, nil
}

// FindAll finds all users with their companies attached
func (r *SQLiteUserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, username, password, created_at, updated_at FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	for _, user := range users {
		if err := r.loadCompanies(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// FindByID finds a user by ID with their companies attached
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, username, password, created_at, updated_at FROM users WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	if err := r.loadCompanies(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindByUsername finds a user by username
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, created_at, updated_at FROM users WHERE username = ?`
	row := r.db.QueryRowContext(ctx, query, username)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}

	return user, nil
}

// Create inserts a new user and returns it with its assigned ID
func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (username, password, created_at, updated_at) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, user.Username, user.Password, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, constraintMessage(err, "username", "username already exists")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error getting inserted user id: %w", err)
	}
	user.ID = int(id)

	return user, nil
}

// Update applies a partial update by primary key. A missing row is not
// an error; callers re-fetch to observe the outcome.
func (r *SQLiteUserRepository) Update(ctx context.Context, id int, user *models.User) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if user.Username != "" {
		sets = append(sets, "username = ?")
		args = append(args, user.Username)
	}
	if user.Password != "" {
		sets = append(sets, "password = ?")
		args = append(args, user.Password)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return constraintMessage(err, "username", "username already exists")
	}

	return nil
}

// DeleteByID deletes a user by ID and returns the number of rows removed
func (r *SQLiteUserRepository) DeleteByID(ctx context.Context, id int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting user: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted users: %w", err)
	}

	return count, nil
}

func (r *SQLiteUserRepository) loadCompanies(ctx context.Context, user *models.User) error {
	query := `SELECT c.id, c.name, c.zip_code, c.created_at, c.updated_at
		FROM companies c
		JOIN company_users cu ON cu.company_id = c.id
		WHERE cu.user_id = ?
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return fmt.Errorf("error querying companies for user: %w", err)
	}
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return fmt.Errorf("error scanning company: %w", err)
		}
		companies = append(companies, *company)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating companies: %w", err)
	}

	user.Companies = companies
	return nil
}

// SQLiteCompanyRepository implements the CompanyRepository interface for SQLite
type SQLiteCompanyRepository struct {
	db *sql.DB
}

// NewSQLiteCompanyRepository creates a new SQLiteCompanyRepository
func NewSQLiteCompanyRepository(db *sql.DB) *SQLiteCompanyRepository {
	return &SQLiteCompanyRepository{db: db}
}

// Close closes the database connection
func (r *SQLiteCompanyRepository) Close() error {
	return r.db.Close()
}

func scanCompany(row interface{ Scan(...interface{}) error }) (*models.Company, error) {
	var company models.Company
	var zipCode sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&company.ID, &company.Name, &zipCode, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if zipCode.Valid {
		zip := int(zipCode.Int64)
		company.ZipCode = &zip
	}
	if createdAt.Valid {
		company.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		company.UpdatedAt = updatedAt.Time
	}

	return &company, nil
}

// FindAll finds all companies with their users attached
func (r *SQLiteCompanyRepository) FindAll(ctx context.Context) ([]*models.Company, error) {
	query := `SELECT id, name, zip_code, created_at, updated_at FROM companies ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning company: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	for _, company := range companies {
		if err := r.loadUsers(ctx, company); err != nil {
			return nil, err
		}
	}

	return companies, nil
}

// FindByID finds a company by ID with its users attached
func (r *SQLiteCompanyRepository) FindByID(ctx context.Context, id int) (*models.Company, error) {
	query := `SELECT id, name, zip_code, created_at, updated_at FROM companies WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	company, err := scanCompany(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error scanning company: %w", err)
	}

	if err := r.loadUsers(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// Create inserts a new company and returns it with its assigned ID
func (r *SQLiteCompanyRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	query := `INSERT INTO companies (name, zip_code, created_at, updated_at) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, company.Name, zipArg(company.ZipCode), company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return nil, constraintMessage(err, "name", "name (for company) already exists")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("error getting inserted company id: %w", err)
	}
	company.ID = int(id)

	return company, nil
}

// Update applies a partial update by primary key
func (r *SQLiteCompanyRepository) Update(ctx context.Context, id int, company *models.Company) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if company.Name != "" {
		sets = append(sets, "name = ?")
		args = append(args, company.Name)
	}
	if company.ZipCode != nil {
		sets = append(sets, "zip_code = ?")
		args = append(args, *company.ZipCode)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE companies SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return constraintMessage(err, "name", "name (for company) already exists")
	}

	return nil
}

// DeleteByID deletes a company by ID and returns the number of rows removed
func (r *SQLiteCompanyRepository) DeleteByID(ctx context.Context, id int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("error deleting company: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted companies: %w", err)
	}

	return count, nil
}

// AddUser links a user to a company. Linking the same pair twice is a no-op.
func (r *SQLiteCompanyRepository) AddUser(ctx context.Context, companyID, userID int) error {
	query := `INSERT OR IGNORE INTO company_users (company_id, user_id, created_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, companyID, userID, time.Now()); err != nil {
		return fmt.Errorf("error linking user %d to company %d: %w", userID, companyID, err)
	}
	return nil
}

func (r *SQLiteCompanyRepository) loadUsers(ctx context.Context, company *models.Company) error {
	query := `SELECT u.id, u.username, u.password, u.created_at, u.updated_at
		FROM users u
		JOIN company_users cu ON cu.user_id = u.id
		WHERE cu.company_id = ?
		ORDER BY u.id`
	rows, err := r.db.QueryContext(ctx, query, company.ID)
	if err != nil {
		return fmt.Errorf("error querying users for company: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating users: %w", err)
	}

	company.Users = users
	return nil
}

func zipArg(zip *int) interface{} {
	if zip == nil {
		return nil
	}
	return *zip
}
