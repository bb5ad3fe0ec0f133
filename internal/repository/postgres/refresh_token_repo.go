package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

type refreshTokenRepo struct {
	db *sqlx.DB
}

// NewRefreshTokenRepo creates a new PostgreSQL-backed RefreshTokenRepository.
func NewRefreshTokenRepo(db *sqlx.DB) port.RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now().UTC()

	query := `INSERT INTO refresh_tokens (id, token, user_id, mobile, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.Token, token.UserID, token.Mobile,
		token.ExpiresAt, token.Revoked, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("refreshTokenRepo.Create: %w", err)
	}
	return nil
}

func (r *refreshTokenRepo) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var rt domain.RefreshToken
	err := r.db.GetContext(ctx, &rt,
		"SELECT * FROM refresh_tokens WHERE token = $1", token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("refreshTokenRepo.GetByToken: %w", err)
	}
	return &rt, nil
}

func (r *refreshTokenRepo) Revoke(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = true WHERE token = $1 AND revoked = false", token)
	if err != nil {
		return fmt.Errorf("refreshTokenRepo.Revoke: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRefreshTokenInvalid
	}
	return nil
}

func (r *refreshTokenRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND revoked = false", userID)
	if err != nil {
		return fmt.Errorf("refreshTokenRepo.RevokeAllForUser: %w", err)
	}
	return nil
}

func (r *refreshTokenRepo) CountActiveForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM refresh_tokens WHERE user_id = $1 AND revoked = false AND expires_at > NOW()",
		userID)
	if err != nil {
		return 0, fmt.Errorf("refreshTokenRepo.CountActiveForUser: %w", err)
	}
	return count, nil
}

func (r *refreshTokenRepo) RevokeOldestForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = true
		WHERE id = (
			SELECT id FROM refresh_tokens
			WHERE user_id = $1 AND revoked = false AND expires_at > NOW()
			ORDER BY created_at ASC
			LIMIT 1
		)`,
		userID)
	if err != nil {
		return fmt.Errorf("refreshTokenRepo.RevokeOldestForUser: %w", err)
	}
	return nil
}

func (r *refreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE expires_at < NOW()")
	if err != nil {
		return 0, fmt.Errorf("refreshTokenRepo.DeleteExpired: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
