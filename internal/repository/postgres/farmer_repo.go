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

type farmerRepo struct {
	db *sqlx.DB
}

// NewFarmerRepo creates a new PostgreSQL-backed FarmerRepository.
func NewFarmerRepo(db *sqlx.DB) port.FarmerRepository {
	return &farmerRepo{db: db}
}

func (r *farmerRepo) Create(ctx context.Context, farmer *domain.Farmer) error {
	farmer.ID = uuid.New()
	now := time.Now().UTC()
	farmer.CreatedAt = now
	farmer.UpdatedAt = now

	query := `INSERT INTO farmers (id, mobile, name, address, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		farmer.ID, farmer.Mobile, farmer.Name, farmer.Address,
		farmer.CreatedBy, farmer.CreatedAt, farmer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("farmerRepo.Create: %w", err)
	}
	return nil
}

func (r *farmerRepo) GetByID(ctx context.Context, ownerID, farmerID uuid.UUID) (*domain.Farmer, error) {
	var farmer domain.Farmer
	err := r.db.GetContext(ctx, &farmer,
		"SELECT * FROM farmers WHERE id = $1 AND created_by = $2", farmerID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFarmerNotFound
		}
		return nil, fmt.Errorf("farmerRepo.GetByID: %w", err)
	}
	return &farmer, nil
}

func (r *farmerRepo) GetByMobile(ctx context.Context, ownerID uuid.UUID, mobile string) (*domain.Farmer, error) {
	var farmer domain.Farmer
	err := r.db.GetContext(ctx, &farmer,
		"SELECT * FROM farmers WHERE created_by = $1 AND mobile = $2", ownerID, mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFarmerNotFound
		}
		return nil, fmt.Errorf("farmerRepo.GetByMobile: %w", err)
	}
	return &farmer, nil
}

func (r *farmerRepo) List(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.Farmer, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM farmers WHERE created_by = $1", ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("farmerRepo.List count: %w", err)
	}

	var farmers []domain.Farmer
	err = r.db.SelectContext(ctx, &farmers,
		"SELECT * FROM farmers WHERE created_by = $1 ORDER BY name ASC LIMIT $2 OFFSET $3",
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("farmerRepo.List: %w", err)
	}
	return farmers, total, nil
}

func (r *farmerRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]domain.Farmer, error) {
	var farmers []domain.Farmer
	err := r.db.SelectContext(ctx, &farmers,
		`SELECT * FROM farmers
		 WHERE created_by = $1 AND (name ILIKE '%' || $2 || '%' OR mobile LIKE '%' || $2 || '%')
		 ORDER BY name ASC LIMIT $3`,
		ownerID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("farmerRepo.Search: %w", err)
	}
	return farmers, nil
}

func (r *farmerRepo) Update(ctx context.Context, farmer *domain.Farmer) error {
	farmer.UpdatedAt = time.Now().UTC()
	query := `UPDATE farmers SET mobile = $1, name = $2, address = $3, updated_at = $4
		WHERE id = $5 AND created_by = $6`
	result, err := r.db.ExecContext(ctx, query,
		farmer.Mobile, farmer.Name, farmer.Address, farmer.UpdatedAt,
		farmer.ID, farmer.CreatedBy)
	if err != nil {
		return fmt.Errorf("farmerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFarmerNotFound
	}
	return nil
}

func (r *farmerRepo) Delete(ctx context.Context, ownerID, farmerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM farmers WHERE id = $1 AND created_by = $2", farmerID, ownerID)
	if err != nil {
		return fmt.Errorf("farmerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrFarmerNotFound
	}
	return nil
}
