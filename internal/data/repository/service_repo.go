package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carwash-booking/internal/data/entity"
	"carwash-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindAll(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewServiceRepository(db database.DBTX, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, title, description, price_minor, category, car_types, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var (
		service  entity.Service
		carTypes []string
	)
	err := row.Scan(
		&service.ID,
		&service.Title,
		&service.Description,
		&service.Price,
		&service.Category,
		&carTypes,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CarTypes = make([]entity.CarType, 0, len(carTypes))
	for _, t := range carTypes {
		service.CarTypes = append(service.CarTypes, entity.CarType(t))
	}
	return &service, nil
}

// FindByID returns the service regardless of its active flag; callers decide.
func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID", zap.Error(err), zap.String("service_id", id.String()))
		return nil, fmt.Errorf("find service by ID %s: %w", id, err)
	}

	return service, nil
}

// FindAll lists active services matching every non-nil filter field.
func (r *serviceRepository) FindAll(ctx context.Context, filter entity.ServiceFilter) ([]*entity.Service, error) {
	conditions := []string{"is_active = true"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.CarType != nil {
		args = append(args, string(*filter.CarType))
		conditions = append(conditions, fmt.Sprintf("(cardinality(car_types) = 0 OR $%d = ANY(car_types))", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price_minor >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price_minor <= $%d", len(args)))
	}

	query := `SELECT ` + serviceColumns + ` FROM services WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY category, price_minor, title`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query services", zap.Error(err))
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Error iterating service rows", zap.Error(err))
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}
