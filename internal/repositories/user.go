package repositories

import (
	"database/sql"
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/lib/pq"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// uniqueViolation is the postgres error code for unique constraint violations
const uniqueViolation = "23505"

// Create inserts a new user. The caller is responsible for hashing the
// password before handing the record over.
func (r *UserRepository) Create(user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email, full_name, is_organizer, is_super_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FullName,
		user.IsOrganizer,
		user.IsSuperAdmin,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by internal id
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, full_name, is_organizer, is_super_admin, created_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, full_name, is_organizer, is_super_admin, created_at
		FROM users
		WHERE username = $1`

	return r.scanUser(r.db.QueryRow(query, username))
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, full_name, is_organizer, is_super_admin, created_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.db.QueryRow(query, email))
}

// List returns all users ordered by id
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, username, password_hash, email, full_name, is_organizer, is_super_admin, created_at
		FROM users
		ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.FullName,
			&user.IsOrganizer,
			&user.IsSuperAdmin,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// SetOrganizer toggles the organizer capability for a user
func (r *UserRepository) SetOrganizer(id int, isOrganizer bool) (*models.User, error) {
	query := `
		UPDATE users
		SET is_organizer = $2
		WHERE id = $1
		RETURNING id, username, password_hash, email, full_name, is_organizer, is_super_admin, created_at`

	return r.scanUser(r.db.QueryRow(query, id, isOrganizer))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FullName,
		&user.IsOrganizer,
		&user.IsSuperAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
