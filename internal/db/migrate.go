package db

import (
	"context"
	"database/sql"
)

const usersMigration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    full_name text NOT NULL,
    email text NOT NULL,
    password_hash text NOT NULL,
    mobile_number text NOT NULL DEFAULT '',
    country_code text NOT NULL DEFAULT '',
    role text NOT NULL DEFAULT 'user',
    testimonial_allowed boolean NOT NULL DEFAULT false,
    is_suspended boolean NOT NULL DEFAULT false,
    signup_date timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));
`

// RunMigration creates the users table. Email uniqueness is
// case-insensitive, enforced by the LOWER(email) index.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, usersMigration)
	return err
}
