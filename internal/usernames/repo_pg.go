package usernames

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Lookup(ctx context.Context, userID string) (string, error) {
	const query = `SELECT username FROM usernames WHERE user_id = $1`
	var name string
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *PGRepo) UserIDFor(ctx context.Context, username string) (string, error) {
	const query = `SELECT user_id FROM usernames WHERE username = $1`
	var id string
	if err := r.DB.QueryRowContext(ctx, query, username).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// CreateIfAbsent relies on the primary key and unique constraint: a conflict on
// either leaves the table untouched and the follow-up lookup tells them apart.
func (r *PGRepo) CreateIfAbsent(ctx context.Context, userID, username string) (string, bool, error) {
	if err := validate(userID, username); err != nil {
		return "", false, err
	}
	const insert = `
INSERT INTO usernames (user_id, username, created_at)
VALUES ($1, $2, now())
ON CONFLICT DO NOTHING
RETURNING username`
	var created string
	err := r.DB.QueryRowContext(ctx, insert, userID, username).Scan(&created)
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, err
	}

	existing, err := r.Lookup(ctx, userID)
	switch {
	case err == nil:
		return existing, false, nil
	case errors.Is(err, ErrNotFound):
		return "", false, ErrUsernameTaken
	default:
		return "", false, err
	}
}
