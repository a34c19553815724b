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

type CartRepository interface {
	Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	LockByUserAndIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error)
	LockByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)
	UpdateQuantity(ctx context.Context, id, userID uuid.UUID, delta int) (*entity.CartItem, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteByCarID(ctx context.Context, userID, carID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewCartRepository(db database.DBTX, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

const cartColumns = `id, user_id, service_id, car_id, scheduled_date, time_slot, special_instructions, quantity, created_at, updated_at`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var item entity.CartItem
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ServiceID,
		&item.CarID,
		&item.ScheduledDate,
		&item.TimeSlot,
		&item.SpecialInstructions,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) collect(rows pgx.Rows) ([]*entity.CartItem, error) {
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			r.log.Error("Failed to scan cart row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Error iterating cart rows", zap.Error(err))
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return items, nil
}

// Upsert inserts the item or, when the (user, service, car, date, slot) key
// already exists, adds its quantity to the stored row.
func (r *cartRepository) Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error) {
	query := `
		INSERT INTO cart_items (id, user_id, service_id, car_id, scheduled_date, time_slot,
		                        special_instructions, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT ON CONSTRAINT uq_cart_items_selection DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity,
		    special_instructions = COALESCE(EXCLUDED.special_instructions, cart_items.special_instructions),
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + cartColumns

	stored, err := scanCartItem(r.db.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.ServiceID,
		item.CarID,
		item.ScheduledDate,
		item.TimeSlot,
		item.SpecialInstructions,
		item.Quantity,
		item.CreatedAt,
		item.UpdatedAt,
	))
	if err != nil {
		r.log.Error("Failed to upsert cart item", zap.Error(err), zap.String("user_id", item.UserID.String()))
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	return stored, nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE id = $1`

	item, err := scanCartItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cart item", zap.Error(err), zap.String("item_id", id.String()))
		return nil, fmt.Errorf("find cart item %s: %w", id, err)
	}

	return item, nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to query cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("query cart: %w", err)
	}

	return r.collect(rows)
}

// LockByUserAndIDs row-locks the user's items among ids until the transaction ends.
// Ids that are missing or owned by someone else are simply absent from the result.
func (r *cartRepository) LockByUserAndIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY created_at, id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, userID, ids)
	if err != nil {
		r.log.Error("Failed to lock cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("lock cart items: %w", err)
	}

	return r.collect(rows)
}

func (r *cartRepository) LockByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartColumns + `
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, id
		FOR UPDATE`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to lock cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("lock cart: %w", err)
	}

	return r.collect(rows)
}

// UpdateQuantity applies delta and clamps the result to at least 1 in one statement.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID uuid.UUID, delta int) (*entity.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = GREATEST(1, quantity + $3), updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + cartColumns

	item, err := scanCartItem(r.db.QueryRow(ctx, query, id, userID, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error("Failed to update cart quantity", zap.Error(err), zap.String("item_id", id.String()))
		return nil, fmt.Errorf("update cart item %s quantity: %w", id, err)
	}

	return item, nil
}

func (r *cartRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete cart item", zap.Error(err), zap.String("item_id", id.String()))
		return fmt.Errorf("delete cart item %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *cartRepository) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`

	result, err := r.db.Exec(ctx, query, userID, ids)
	if err != nil {
		r.log.Error("Failed to delete cart items", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("delete cart items: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return 0, fmt.Errorf("clear cart: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *cartRepository) DeleteByCarID(ctx context.Context, userID, carID uuid.UUID) (int64, error) {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND car_id = $2`

	result, err := r.db.Exec(ctx, query, userID, carID)
	if err != nil {
		r.log.Error("Failed to delete cart items for car", zap.Error(err), zap.String("car_id", carID.String()))
		return 0, fmt.Errorf("delete cart items for car %s: %w", carID, err)
	}

	return result.RowsAffected(), nil
}
