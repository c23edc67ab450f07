package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/database"
	"brokerapi/src/model"
)

// OrderRepository handles the append-only orders table and drives the
// position update that belongs to the same commit.
type OrderRepository struct {
	db        *gorm.DB
	positions *PositionRepository
}

// NewOrderRepository creates a new repository instance using the main read/write database.
func NewOrderRepository() *OrderRepository {
	logger.WithField("component", "OrderRepository").
		Info("Creating new OrderRepository with MainDB")

	return &OrderRepository{
		db:        database.MainDB,
		positions: NewPositionRepository(),
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *OrderRepository) WithDB(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, positions: &PositionRepository{db: db}}
}

// Create persists the resolved order and, when the order is a filled
// BUY or SELL, applies it to the position ledger. Both writes share one
// transaction: if either fails, neither is observable. The given order
// is updated with its generated ID.
func (r *OrderRepository) Create(
	ctx context.Context,
	order *model.Order,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":          "OrderRepository",
		"op":            "Create",
		"user_id":       order.UserID,
		"instrument_id": order.InstrumentID,
		"side":          order.Side,
		"type":          order.Type,
		"size":          order.Size,
		"status":        order.Status,
	}).Debug("Creating new order")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			logger.WithError(err).Error("Failed to create order inside transaction")
			return err
		}

		if order.Status == model.OrderStatusFilled && !order.IsCashMovement() {
			if err := r.positions.ApplyFill(ctx, tx, order); err != nil {
				logger.WithError(err).Error("Failed to apply fill to position inside transaction")
				return err
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "OrderRepository",
		"op":       "Create",
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("Order created successfully")

	return nil
}

// FindByID fetches a single order by its primary ID.
// Returns (nil, nil) if the order is not found.
func (r *OrderRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.Order, error) {

	var order model.Order

	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "OrderRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch order by ID")

		return nil, err
	}

	return &order, nil
}

// FindFilledByUserID returns every FILLED order belonging to the user.
// The cash balance fold consumes this in any order, so no explicit
// ordering is requested.
func (r *OrderRepository) FindFilledByUserID(
	ctx context.Context,
	userID uint,
) ([]model.Order, error) {

	var orders []model.Order

	err := r.db.WithContext(ctx).
		Where("userid = ? AND status = ?", userID, model.OrderStatusFilled).
		Find(&orders).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "OrderRepository",
			"op":      "FindFilledByUserID",
			"user_id": userID,
		}).WithError(err).Error("Failed to fetch filled orders for user")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "OrderRepository",
		"op":          "FindFilledByUserID",
		"user_id":     userID,
		"rows_return": len(orders),
	}).Debug("Filled orders fetched")

	return orders, nil
}
