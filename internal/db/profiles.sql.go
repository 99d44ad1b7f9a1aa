package db

import (
	"context"
)

const createProfile = `-- name: CreateProfile :exec
INSERT INTO profiles (id, username, email, password_hash)
VALUES (?, ?, ?, ?)
`

type CreateProfileParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) error {
	_, err := q.db.ExecContext(ctx, createProfile,
		arg.ID,
		arg.Username,
		arg.Email,
		arg.PasswordHash,
	)
	return err
}

const getProfile = `-- name: GetProfile :one
SELECT id, username, email, password_hash, created_at FROM profiles
WHERE id = ?
`

func (q *Queries) GetProfile(ctx context.Context, id string) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfile, id)
	var i Profile
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.PasswordHash,
		&i.CreatedAt,
	)
	return i, err
}

const getProfileByEmail = `-- name: GetProfileByEmail :one
SELECT id, username, email, password_hash, created_at FROM profiles
WHERE email = ?
`

func (q *Queries) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfileByEmail, email)
	var i Profile
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Email,
		&i.PasswordHash,
		&i.CreatedAt,
	)
	return i, err
}
