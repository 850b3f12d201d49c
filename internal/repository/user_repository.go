package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorhub/api/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `
	u.id, u.username, u.password_hash, u.email, u.phone_number,
	u.is_active, u.is_staff, u.mentor_id, m.username,
	u.created_at, u.updated_at
`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	const query = `
		INSERT INTO users (
			id, username, password_hash, email, phone_number, is_active, is_staff, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.PhoneNumber,
		user.IsActive,
		user.IsStaff,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.mentor_id
		WHERE u.id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.mentor_id
		WHERE u.username = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

// FindByUsernames resolves a batch of usernames in one query. Rows are
// distinct per user, so duplicate input names collapse.
func (r *UserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.mentor_id
		WHERE u.username = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, usernames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN users m ON m.id = u.mentor_id
		ORDER BY u.created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, email *string, phoneNumber *string) error {
	const query = `
		UPDATE users SET email = $2, phone_number = $3, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, email, phoneNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AssignMentor points every given mentee at the mentor in a single statement,
// overwriting any previous mentor link. Returns the number of rows updated.
func (r *UserRepository) AssignMentor(ctx context.Context, mentorID string, menteeIDs []string) (int64, error) {
	if len(menteeIDs) == 0 {
		return 0, nil
	}
	const query = `
		UPDATE users SET mentor_id = $1, updated_at = NOW() WHERE id = ANY($2)
	`
	cmd, err := r.pool.Exec(ctx, query, mentorID, menteeIDs)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *UserRepository) MenteeUsernames(ctx context.Context, mentorID string) ([]string, error) {
	const query = `
		SELECT username FROM users WHERE mentor_id = $1 ORDER BY username
	`
	rows, err := r.pool.Query(ctx, query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usernames := []string{}
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.PhoneNumber,
		&user.IsActive,
		&user.IsStaff,
		&user.MentorID,
		&user.MentorUsername,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) scanAll(rows pgx.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Email,
			&user.PhoneNumber,
			&user.IsActive,
			&user.IsStaff,
			&user.MentorID,
			&user.MentorUsername,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
