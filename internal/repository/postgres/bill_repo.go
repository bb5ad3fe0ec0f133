package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bananabill/internal/domain"
	"bananabill/internal/port"
)

type billRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a new PostgreSQL-backed BillRepository.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &billRepo{db: db}
}

func (r *billRepo) Create(ctx context.Context, bill *domain.Bill) error {
	bill.ID = uuid.New()
	now := time.Now().UTC()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	query := `INSERT INTO bills (id, bill_number, farmer_id, vehicle_number,
		gross_weight, patti_weight, box_count, net_weight, danda_weight, tut_wastage, final_net_weight,
		rate_per_kg, total_amount, majuri, net_amount,
		payment_status, paid_amount, advance_amount, payment_date, due_date, last_reminder_sent,
		image_url, created_by, created_at, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID, bill.BillNumber, bill.FarmerID, bill.VehicleNumber,
		bill.GrossWeight, bill.PattiWeight, bill.BoxCount, bill.NetWeight,
		bill.DandaWeight, bill.TutWastage, bill.FinalNetWeight,
		bill.RatePerKg, bill.TotalAmount, bill.Majuri, bill.NetAmount,
		bill.PaymentStatus, bill.PaidAmount, bill.AdvanceAmount,
		bill.PaymentDate, bill.DueDate, bill.LastReminderSent,
		bill.ImageURL, bill.CreatedBy, bill.CreatedAt, bill.UpdatedAt, bill.UpdatedBy)
	if err != nil {
		return fmt.Errorf("billRepo.Create: %w", err)
	}
	return nil
}

func (r *billRepo) GetByID(ctx context.Context, ownerID, billID uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM bills WHERE id = $1 AND created_by = $2", billID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByID: %w", err)
	}
	bills := []domain.Bill{bill}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, err
	}
	return &bills[0], nil
}

func (r *billRepo) GetByNumber(ctx context.Context, ownerID uuid.UUID, billNumber string) (*domain.Bill, error) {
	var bill domain.Bill
	err := r.db.GetContext(ctx, &bill,
		"SELECT * FROM bills WHERE bill_number = $1 AND created_by = $2", billNumber, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBillNotFound
		}
		return nil, fmt.Errorf("billRepo.GetByNumber: %w", err)
	}
	bills := []domain.Bill{bill}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, err
	}
	return &bills[0], nil
}

// filterClause builds the WHERE fragments shared by List and ListByFarmer.
func filterClause(filters domain.BillFilters, args []interface{}) (string, []interface{}) {
	var sb strings.Builder
	if filters.FarmerID != nil {
		args = append(args, *filters.FarmerID)
		fmt.Fprintf(&sb, " AND farmer_id = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		fmt.Fprintf(&sb, " AND created_at >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		fmt.Fprintf(&sb, " AND created_at < $%d", len(args))
	}
	if filters.PaymentStatus != "" {
		args = append(args, filters.PaymentStatus)
		fmt.Fprintf(&sb, " AND payment_status = $%d", len(args))
	}
	return sb.String(), args
}

func (r *billRepo) List(ctx context.Context, ownerID uuid.UUID, filters domain.BillFilters, offset, limit int) ([]domain.Bill, int, error) {
	args := []interface{}{ownerID}
	where, args := filterClause(filters, args)

	var total int
	countQuery := "SELECT COUNT(*) FROM bills WHERE created_by = $1" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(
		"SELECT * FROM bills WHERE created_by = $1%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var bills []domain.Bill
	if err := r.db.SelectContext(ctx, &bills, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("billRepo.List: %w", err)
	}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

func (r *billRepo) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills,
		"SELECT * FROM bills WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2",
		ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListRecent: %w", err)
	}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) ListByFarmer(ctx context.Context, ownerID, farmerID uuid.UUID, filters domain.BillFilters) ([]domain.Bill, error) {
	filters.FarmerID = &farmerID
	args := []interface{}{ownerID}
	where, args := filterClause(filters, args)

	var bills []domain.Bill
	query := "SELECT * FROM bills WHERE created_by = $1" + where + " ORDER BY created_at DESC"
	if err := r.db.SelectContext(ctx, &bills, query, args...); err != nil {
		return nil, fmt.Errorf("billRepo.ListByFarmer: %w", err)
	}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) ListByDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := r.db.SelectContext(ctx, &bills,
		`SELECT * FROM bills WHERE created_by = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at ASC`,
		ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("billRepo.ListByDateRange: %w", err)
	}
	if err := r.attachFarmers(ctx, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepo) Update(ctx context.Context, bill *domain.Bill) error {
	bill.UpdatedAt = time.Now().UTC()
	query := `UPDATE bills SET farmer_id = $1, vehicle_number = $2,
		gross_weight = $3, patti_weight = $4, box_count = $5, net_weight = $6,
		danda_weight = $7, tut_wastage = $8, final_net_weight = $9,
		rate_per_kg = $10, total_amount = $11, majuri = $12, net_amount = $13,
		payment_status = $14, paid_amount = $15, advance_amount = $16,
		payment_date = $17, due_date = $18, last_reminder_sent = $19,
		image_url = $20, updated_at = $21, updated_by = $22
		WHERE id = $23 AND created_by = $24`

	result, err := r.db.ExecContext(ctx, query,
		bill.FarmerID, bill.VehicleNumber,
		bill.GrossWeight, bill.PattiWeight, bill.BoxCount, bill.NetWeight,
		bill.DandaWeight, bill.TutWastage, bill.FinalNetWeight,
		bill.RatePerKg, bill.TotalAmount, bill.Majuri, bill.NetAmount,
		bill.PaymentStatus, bill.PaidAmount, bill.AdvanceAmount,
		bill.PaymentDate, bill.DueDate, bill.LastReminderSent,
		bill.ImageURL, bill.UpdatedAt, bill.UpdatedBy,
		bill.ID, bill.CreatedBy)
	if err != nil {
		return fmt.Errorf("billRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) Delete(ctx context.Context, ownerID, billID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM bills WHERE id = $1 AND created_by = $2", billID, ownerID)
	if err != nil {
		return fmt.Errorf("billRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBillNotFound
	}
	return nil
}

func (r *billRepo) CountToday(ctx context.Context, ownerID uuid.UUID, dayStart time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM bills WHERE created_by = $1 AND created_at >= $2",
		ownerID, dayStart)
	if err != nil {
		return 0, fmt.Errorf("billRepo.CountToday: %w", err)
	}
	return count, nil
}

func (r *billRepo) CountTotal(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM bills WHERE created_by = $1", ownerID)
	if err != nil {
		return 0, fmt.Errorf("billRepo.CountTotal: %w", err)
	}
	return count, nil
}

func (r *billRepo) CountUnpaid(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM bills WHERE created_by = $1 AND payment_status <> $2",
		ownerID, domain.PaymentStatusPaid)
	if err != nil {
		return 0, fmt.Errorf("billRepo.CountUnpaid: %w", err)
	}
	return count, nil
}

func (r *billRepo) TotalUnpaidAmount(ctx context.Context, ownerID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(net_amount - paid_amount), 0) FROM bills
		 WHERE created_by = $1 AND payment_status <> $2`,
		ownerID, domain.PaymentStatusPaid)
	if err != nil {
		return 0, fmt.Errorf("billRepo.TotalUnpaidAmount: %w", err)
	}
	return total, nil
}

func (r *billRepo) DistinctMonths(ctx context.Context, ownerID uuid.UUID) ([]time.Time, error) {
	var months []time.Time
	err := r.db.SelectContext(ctx, &months,
		`SELECT DISTINCT date_trunc('month', created_at) AS month FROM bills
		 WHERE created_by = $1 ORDER BY month DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("billRepo.DistinctMonths: %w", err)
	}
	return months, nil
}

// attachFarmers hydrates the denormalized Farmer field on each bill with a
// single IN query.
func (r *billRepo) attachFarmers(ctx context.Context, bills []domain.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(bills))
	ids := make([]uuid.UUID, 0, len(bills))
	for i := range bills {
		if !seen[bills[i].FarmerID] {
			seen[bills[i].FarmerID] = true
			ids = append(ids, bills[i].FarmerID)
		}
	}

	query, args, err := sqlx.In("SELECT * FROM farmers WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("billRepo.attachFarmers: %w", err)
	}
	query = r.db.Rebind(query)

	var farmers []domain.Farmer
	if err := r.db.SelectContext(ctx, &farmers, query, args...); err != nil {
		return fmt.Errorf("billRepo.attachFarmers: %w", err)
	}

	byID := make(map[uuid.UUID]*domain.Farmer, len(farmers))
	for i := range farmers {
		byID[farmers[i].ID] = &farmers[i]
	}
	for i := range bills {
		bills[i].Farmer = byID[bills[i].FarmerID]
	}
	return nil
}
