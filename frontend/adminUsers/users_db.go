package adminusers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"serialtrace/frontend/login"
	"serialtrace/infrastructure/argon"
	"serialtrace/infrastructure/rbac"
	"serialtrace/infrastructure/sqlite"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be admin or operator")
	ErrUsernameExists   = errors.New("username already exists")
)

func LoadUsersPageData(ctx context.Context, db *sqlite.DB) (PageData, error) {
	users := make([]UserView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw("SELECT id, username, role FROM users ORDER BY id ASC").Scan(ctx, &users)
	})
	return PageData{Users: users}, err
}

// CreateUser validates and stores a new user with a hashed password.
// Usernames are unique case-insensitively.
func CreateUser(ctx context.Context, db *sqlite.DB, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrPasswordRequired
	}
	if role != rbac.RoleAdmin && role != rbac.RoleOperator {
		return ErrInvalidRole
	}
	if err := login.ValidatePasswordPolicy(password); err != nil {
		return err
	}

	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}

	now := time.Now()
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var existing int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM users WHERE LOWER(username) = ?`, strings.ToLower(username)).Scan(ctx, &existing); err != nil {
			return err
		}
		if existing > 0 {
			return ErrUsernameExists
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO users (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`, username, hash, role, now, now)
		return err
	})
}
