package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/pkg/database"
)

const userColumns = `id, email, password_hash, first_name, last_name, bio,
		tech_stack, looking_to_learn, github_url, linkedin_url, discord_id,
		avatar, impression_count, refresh_token_hash, created_at, updated_at`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, bio,
			tech_stack, looking_to_learn, github_url, linkedin_url, discord_id,
			avatar, impression_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.TechStack == nil {
		user.TechStack = []string{}
	}
	if user.LookingToLearn == nil {
		user.LookingToLearn = []string{}
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Bio,
		pq.Array(user.TechStack),
		pq.Array(user.LookingToLearn),
		user.GithubURL,
		user.LinkedinURL,
		user.DiscordID,
		user.Avatar,
		user.ImpressionCount,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// List retrieves all users ordered by creation time, oldest first. The id
// tiebreak keeps the order deterministic for rows created in the same instant.
func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, userID, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return r.requireRow(result, userID)
}

// UpdateProfile applies the provided allow-listed fields in a single UPDATE
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	setClauses := []string{}
	args := []interface{}{userID}

	appendClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.FirstName != nil {
		appendClause("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		appendClause("last_name", *update.LastName)
	}
	if update.Bio != nil {
		appendClause("bio", *update.Bio)
	}
	if update.GithubURL != nil {
		appendClause("github_url", *update.GithubURL)
	}
	if update.LinkedinURL != nil {
		appendClause("linkedin_url", *update.LinkedinURL)
	}
	if update.DiscordID != nil {
		appendClause("discord_id", *update.DiscordID)
	}
	if update.TechStack != nil {
		appendClause("tech_stack", pq.Array(update.TechStack))
	}
	if update.LookingToLearn != nil {
		appendClause("looking_to_learn", pq.Array(update.LookingToLearn))
	}

	if len(setClauses) == 0 {
		return nil, errors.New("no fields to update")
	}

	appendClause("updated_at", time.Now())

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(setClauses, ", "), userColumns,
	)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// UpdateAvatar stores the hosted avatar URL
func (r *userRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*domain.User, error) {
	query := `UPDATE users SET avatar = $2, updated_at = $3 WHERE id = $1 RETURNING ` + userColumns

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, userID, avatarURL, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	return user, nil
}

// SetRefreshToken installs or clears the user's refresh token hash
func (r *userRepository) SetRefreshToken(ctx context.Context, userID string, tokenHash *string) error {
	query := `UPDATE users SET refresh_token_hash = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, userID, tokenHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}

	return r.requireRow(result, userID)
}

// RotateRefreshToken performs a compare-and-swap on the refresh token hash.
// The WHERE clause carries the comparison so that two rotations presenting
// the same token cannot both succeed.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID, oldHash, newHash string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $3, updated_at = $4
		WHERE id = $1 AND refresh_token_hash = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, oldHash, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("refresh token for user %s: %w", userID, ErrRefreshTokenMismatch)
	}

	return nil
}

// IncrementImpressions bumps the impression counter in a single UPDATE so
// concurrent viewers never lose increments.
func (r *userRepository) IncrementImpressions(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		UPDATE users
		SET impression_count = impression_count + 1, updated_at = $2
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, userID, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to increment impressions: %w", err)
	}

	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var refreshTokenHash sql.NullString
	var techStack, lookingToLearn pq.StringArray

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&techStack,
		&lookingToLearn,
		&user.GithubURL,
		&user.LinkedinURL,
		&user.DiscordID,
		&user.Avatar,
		&user.ImpressionCount,
		&refreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.TechStack = []string(techStack)
	user.LookingToLearn = []string(lookingToLearn)
	if refreshTokenHash.Valid {
		user.RefreshTokenHash = &refreshTokenHash.String
	}

	return user, nil
}

func (r *userRepository) requireRow(result sql.Result, userID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	return nil
}
