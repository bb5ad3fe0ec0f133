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

type otpRepo struct {
	db *sqlx.DB
}

// NewOTPRepo creates a new PostgreSQL-backed OTPRepository.
func NewOTPRepo(db *sqlx.DB) port.OTPRepository {
	return &otpRepo{db: db}
}

func (r *otpRepo) Create(ctx context.Context, otp *domain.OTP) error {
	otp.ID = uuid.New()
	otp.CreatedAt = time.Now().UTC()

	query := `INSERT INTO otps (id, mobile, otp_hash, action, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		otp.ID, otp.Mobile, otp.OTPHash, otp.Action,
		otp.ExpiresAt, otp.Used, otp.CreatedAt)
	if err != nil {
		return fmt.Errorf("otpRepo.Create: %w", err)
	}
	return nil
}

func (r *otpRepo) GetLatest(ctx context.Context, mobile string, action domain.OTPAction) (*domain.OTP, error) {
	var otp domain.OTP
	err := r.db.GetContext(ctx, &otp,
		`SELECT * FROM otps WHERE mobile = $1 AND action = $2 AND used = false
		 ORDER BY created_at DESC LIMIT 1`,
		mobile, action)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, fmt.Errorf("otpRepo.GetLatest: %w", err)
	}
	return &otp, nil
}

func (r *otpRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE otps SET used = true WHERE id = $1 AND used = false", id)
	if err != nil {
		return fmt.Errorf("otpRepo.MarkUsed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOTPInvalid
	}
	return nil
}

func (r *otpRepo) InvalidateForMobile(ctx context.Context, mobile string, action domain.OTPAction) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE otps SET used = true WHERE mobile = $1 AND action = $2 AND used = false",
		mobile, action)
	if err != nil {
		return fmt.Errorf("otpRepo.InvalidateForMobile: %w", err)
	}
	return nil
}
