package repository

import (
	"context"
	"errors"
	"fmt"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BuildingRepository interface {
	Create(ctx context.Context, building *entity.Building) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Building, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Building, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Building, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
	SetDefault(ctx context.Context, id, userID uuid.UUID) error
}

type buildingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBuildingRepository(db database.DBTX, log *zap.Logger) BuildingRepository {
	return &buildingRepository{
		db:  db,
		log: log.With(zap.String("repository", "building")),
	}
}

const buildingColumns = `id, user_id, name, address, city, country, is_default, created_at, updated_at`

func scanBuilding(row pgx.Row) (*entity.Building, error) {
	var b entity.Building
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Address,
		&b.City,
		&b.Country,
		&b.IsDefault,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *buildingRepository) Create(ctx context.Context, building *entity.Building) error {
	query := `
		INSERT INTO buildings (id, user_id, name, address, city, country, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		building.ID,
		building.UserID,
		building.Name,
		building.Address,
		building.City,
		building.Country,
		building.IsDefault,
		building.CreatedAt,
		building.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create building", zap.Error(err), zap.String("user_id", building.UserID.String()))
		return fmt.Errorf("create building: %w", err)
	}

	return nil
}

func (r *buildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE id = $1`

	building, err := scanBuilding(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find building by ID", zap.Error(err), zap.String("building_id", id.String()))
		return nil, fmt.Errorf("find building by ID %s: %w", id, err)
	}

	return building, nil
}

func (r *buildingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Building, error) {
	query := `SELECT ` + buildingColumns + `
		FROM buildings
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to query buildings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("query buildings: %w", err)
	}
	defer rows.Close()

	var buildings []*entity.Building
	for rows.Next() {
		building, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		buildings = append(buildings, building)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buildings: %w", err)
	}

	return buildings, nil
}

func (r *buildingRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*entity.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE user_id = $1 AND is_default`

	building, err := scanBuilding(r.db.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find default building", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find default building: %w", err)
	}

	return building, nil
}

func (r *buildingRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE buildings SET is_default = false, updated_at = NOW() WHERE user_id = $1 AND is_default`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to clear default building", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("clear default building: %w", err)
	}

	return nil
}

// SetDefault must run after ClearDefault in the same transaction; uq_buildings_default allows one per user.
func (r *buildingRepository) SetDefault(ctx context.Context, id, userID uuid.UUID) error {
	query := `UPDATE buildings SET is_default = true, updated_at = NOW() WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to set default building", zap.Error(err), zap.String("building_id", id.String()))
		return fmt.Errorf("set default building %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
