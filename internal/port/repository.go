package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bananabill/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// FarmerRepository defines the contract for farmer persistence.
// All query methods include ownerID so a trader only ever sees their own
// farmers.
type FarmerRepository interface {
	Create(ctx context.Context, farmer *domain.Farmer) error
	GetByID(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error)
	GetByMobile(ctx context.Context, ownerID uuid.UUID, mobile string) (*domain.Farmer, error)
	List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.Farmer, error)
	Update(ctx context.Context, farmer *domain.Farmer) error
	Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error
}

// BillRepository defines the contract for bill persistence. Query methods
// include ownerID for per-trader isolation.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	GetByID(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error)
	GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error)
	List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error)
	ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Bill, error)
	ListByFarmer(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) ([]domain.Bill, error)
	ListByDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error)
	Update(ctx context.Context, bill *domain.Bill) error
	Delete(ctx context.Context, ownerID, billID uuid.UUID) error
	CountToday(ctx context.Context, ownerID uuid.UUID, dayStart time.Time) (int, error)
	CountTotal(ctx context.Context, ownerID uuid.UUID) (int, error)
	CountUnpaid(ctx context.Context, ownerID uuid.UUID) (int, error)
	TotalUnpaidAmount(ctx context.Context, ownerID uuid.UUID) (float64, error)
	DistinctMonths(ctx context.Context, ownerID uuid.UUID) ([]time.Time, error)
}

// RefreshTokenRepository defines the contract for persisted refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	CountActiveForUser(ctx context.Context, userID uuid.UUID) (int, error)
	RevokeOldestForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// OTPRepository defines the contract for one-time password persistence.
type OTPRepository interface {
	Create(ctx context.Context, otp *domain.OTP) error
	GetLatest(ctx context.Context, mobile string, action domain.OTPAction) (*domain.OTP, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	InvalidateForMobile(ctx context.Context, mobile string, action domain.OTPAction) error
}

// PaymentHistoryRepository defines the contract for the append-only payment
// audit trail.
type PaymentHistoryRepository interface {
	Create(ctx context.Context, entry *domain.PaymentHistory) error
	ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.PaymentHistory, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID, offset, limit int) ([]domain.PaymentHistory, int, error)
}

// SequenceRepository hands out monotonically increasing per-key sequence
// numbers. Next must be safe under concurrent callers.
type SequenceRepository interface {
	Next(ctx context.Context, key string) (int64, error)
}
