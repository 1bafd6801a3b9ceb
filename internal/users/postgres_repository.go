package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/shivam13669/storiesby-auth/internal/db"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *db.DB
}

func NewPostgresRepository(db *db.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, full_name, email, password_hash, mobile_number,
	country_code, role, testimonial_allowed, is_suspended, signup_date`

func scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MobileNumber,
		&u.CountryCode, &u.Role, &u.TestimonialAllowed, &u.IsSuspended,
		&u.SignupDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("users: scanning row: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users
			(full_name, email, password_hash, mobile_number, country_code, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, testimonial_allowed, is_suspended, signup_date
	`,
		user.FullName, user.Email, user.PasswordHash,
		user.MobileNumber, user.CountryCode, user.Role,
	).Scan(&user.ID, &user.TestimonialAllowed, &user.IsSuspended, &user.SignupDate)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("users: inserting user: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)
	return scanUser(row)
}

// List returns every user in signup order.
func (r *PostgresRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("users: listing users: %w", err)
	}
	defer rows.Close()

	var result []*User
	for rows.Next() {
		u := &User{}
		err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MobileNumber,
			&u.CountryCode, &u.Role, &u.TestimonialAllowed, &u.IsSuspended,
			&u.SignupDate,
		)
		if err != nil {
			return nil, fmt.Errorf("users: scanning row: %w", err)
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users: iterating rows: %w", err)
	}

	return result, nil
}

// ToggleTestimonial flips the flag in a single statement so two
// concurrent toggles cannot read the same prior value.
func (r *PostgresRepository) ToggleTestimonial(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET testimonial_allowed = NOT testimonial_allowed
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id)
	return scanUser(row)
}

func (r *PostgresRepository) SetSuspended(ctx context.Context, id int64, suspended bool) error {
	return r.execOnID(ctx, `
		UPDATE users SET is_suspended = $2 WHERE id = $1
	`, id, suspended)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.execOnID(ctx, `
		UPDATE users SET password_hash = $2 WHERE id = $1
	`, id, passwordHash)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.execOnID(ctx, `
		DELETE FROM users WHERE id = $1
	`, id)
}

func (r *PostgresRepository) execOnID(ctx context.Context, query string, id int64, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("users: executing update: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("users: reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
