package db

import (
	"context"
	"fmt"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

type CreateUserParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

const createUser = `INSERT INTO users (username, email, first_name, last_name, password_hash)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	res, err := q.db.ExecContext(ctx, createUser,
		arg.Username, arg.Email, arg.FirstName, arg.LastName, arg.PasswordHash)
	if err != nil {
		return User{}, fmt.Errorf("create user %q: %w", arg.Username, conflict(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return q.GetUserByID(ctx, id)
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
	return u, notFound(err)
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	u, err := scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
	return u, notFound(err)
}

type UpdateUserProfileParams struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string
}

const updateUserProfile = `UPDATE users
SET username = ?, email = ?, first_name = ?, last_name = ?
WHERE id = ?`

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) error {
	res, err := q.db.ExecContext(ctx, updateUserProfile,
		arg.Username, arg.Email, arg.FirstName, arg.LastName, arg.ID)
	if err != nil {
		return fmt.Errorf("update user %d: %w", arg.ID, conflict(err))
	}
	return rowsAffected(res)
}

const deleteUser = `DELETE FROM users WHERE id = ?`

// DeleteUser remove o usuário; posts e comentários dele caem em cascata.
// Só os testes das chaves estrangeiras chamam esta função.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return rowsAffected(res)
}
