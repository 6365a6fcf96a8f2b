package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fintrack/fintrack-go/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AuthRepo implements port.AuthStore.
type AuthRepo struct {
	db *sql.DB
}

// NewAuthRepo creates the auth repository.
func NewAuthRepo(db *sql.DB) *AuthRepo {
	return &AuthRepo{db: db}
}

func (r *AuthRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *AuthRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *AuthRepo) getUser(ctx context.Context, cond string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE "+cond, arg)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "user"}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *AuthRepo) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &domain.ErrConflict{Message: "email already registered"}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *AuthRepo) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (r *AuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshTokenRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, revoked
		FROM refresh_tokens WHERE token_hash = $1`, tokenHash)

	var rec domain.RefreshTokenRecord
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.TokenHash, &rec.ExpiresAt, &rec.Revoked); err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Resource: "refresh_token"}
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &rec, nil
}

func (r *AuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *AuthRepo) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND NOT revoked`, userID)
	if err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}
