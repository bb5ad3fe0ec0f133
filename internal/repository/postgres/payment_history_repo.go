package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

type paymentHistoryRepo struct {
	db *sqlx.DB
}

// NewPaymentHistoryRepo creates a new PostgreSQL-backed PaymentHistoryRepository.
func NewPaymentHistoryRepo(db *sqlx.DB) port.PaymentHistoryRepository {
	return &paymentHistoryRepo{db: db}
}

func (r *paymentHistoryRepo) Create(ctx context.Context, entry *domain.PaymentHistory) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payment_history (id, bill_id, bill_number, farmer_id, farmer_name,
		farmer_mobile, amount, previous_paid_amount, new_paid_amount, bill_net_amount,
		payment_type, payment_method, notes, created_by, created_by_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.BillID, entry.BillNumber, entry.FarmerID, entry.FarmerName,
		entry.FarmerMobile, entry.Amount, entry.PreviousPaidAmount, entry.NewPaidAmount,
		entry.BillNetAmount, entry.PaymentType, entry.PaymentMethod, entry.Notes,
		entry.CreatedBy, entry.CreatedByName, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentHistoryRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentHistoryRepo) ListByBill(ctx context.Context, billID uuid.UUID) ([]domain.PaymentHistory, error) {
	var entries []domain.PaymentHistory
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM payment_history WHERE bill_id = $1 ORDER BY created_at DESC", billID)
	if err != nil {
		return nil, fmt.Errorf("paymentHistoryRepo.ListByBill: %w", err)
	}
	return entries, nil
}

func (r *paymentHistoryRepo) ListByFarmer(ctx context.Context, farmerID uuid.UUID, offset, limit int) ([]domain.PaymentHistory, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM payment_history WHERE farmer_id = $1", farmerID)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentHistoryRepo.ListByFarmer count: %w", err)
	}

	var entries []domain.PaymentHistory
	err = r.db.SelectContext(ctx, &entries,
		"SELECT * FROM payment_history WHERE farmer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		farmerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentHistoryRepo.ListByFarmer: %w", err)
	}
	return entries, total, nil
}
