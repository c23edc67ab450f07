package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brokerapi/src/database"
	"brokerapi/src/model"
)

// PositionRepository owns the stock_positions rows. ApplyFill is the
// only mutator; everything else is read-only.
type PositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new repository instance using the main database.
func NewPositionRepository() *PositionRepository {
	logger.WithField("component", "PositionRepository").
		Info("Creating new PositionRepository with MainDB")

	return &PositionRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *PositionRepository) WithDB(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// FindQuantity returns the currently held share count for the pair,
// zero when no position row exists.
func (r *PositionRepository) FindQuantity(
	ctx context.Context,
	userID uint,
	instrumentID uint,
) (int64, error) {

	var position model.Position

	err := r.db.WithContext(ctx).
		Where("userid = ? AND instrumentid = ?", userID, instrumentID).
		First(&position).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":          "PositionRepository",
			"op":            "FindQuantity",
			"user_id":       userID,
			"instrument_id": instrumentID,
		}).WithError(err).Error("Failed to fetch position quantity")

		return 0, err
	}

	return position.Quantity, nil
}

// FindByUserID returns every position row belonging to the user,
// including rows whose quantity has returned to zero.
func (r *PositionRepository) FindByUserID(
	ctx context.Context,
	userID uint,
) ([]model.Position, error) {

	var positions []model.Position

	err := r.db.WithContext(ctx).
		Where("userid = ?", userID).
		Order("instrumentid ASC").
		Find(&positions).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "PositionRepository",
			"op":      "FindByUserID",
			"user_id": userID,
		}).WithError(err).Error("Failed to fetch positions for user")

		return nil, err
	}

	return positions, nil
}

// ApplyFill applies a filled BUY/SELL order to the position row inside
// the given transaction, using the weighted-average cost basis rule.
// A SELL against a user/instrument pair with no prior row is skipped:
// a sell can never open a position, and the holdings check upstream
// keeps this path unreachable in normal operation.
func (r *PositionRepository) ApplyFill(
	ctx context.Context,
	tx *gorm.DB,
	order *model.Order,
) error {

	var current model.Position

	err := tx.WithContext(ctx).
		Where("userid = ? AND instrumentid = ?", order.UserID, order.InstrumentID).
		First(&current).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if order.Side != model.OrderSideBuy {
			logger.WithFields(map[string]interface{}{
				"repo":          "PositionRepository",
				"op":            "ApplyFill",
				"user_id":       order.UserID,
				"instrument_id": order.InstrumentID,
				"side":          order.Side,
			}).Warn("Skipping fill for non-BUY order with no existing position")

			return nil
		}

		current = model.Position{UserID: order.UserID, InstrumentID: order.InstrumentID}
	}

	quantity, costBasis := nextPosition(
		current.Quantity,
		current.CostBasis,
		order.Side,
		order.Size,
		order.Price,
	)

	updated := model.Position{
		UserID:       order.UserID,
		InstrumentID: order.InstrumentID,
		Quantity:     quantity,
		CostBasis:    costBasis.Round(2),
		LastOrderID:  &order.ID,
		UpdatedAt:    time.Now(),
	}

	err = tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "userid"}, {Name: "instrumentid"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "costbasis", "lastorderid", "updatedat"}),
		}).
		Create(&updated).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":          "PositionRepository",
			"op":            "ApplyFill",
			"user_id":       order.UserID,
			"instrument_id": order.InstrumentID,
			"order_id":      order.ID,
		}).WithError(err).Error("Failed to upsert position")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":          "PositionRepository",
		"op":            "ApplyFill",
		"user_id":       order.UserID,
		"instrument_id": order.InstrumentID,
		"order_id":      order.ID,
		"quantity":      quantity,
		"cost_basis":    costBasis.String(),
	}).Info("Position updated")

	return nil
}

// nextPosition computes the weighted-average cost basis update. A BUY
// adds size shares at price; a SELL removes cost proportional to the
// current average cost per share, leaving the average invariant.
func nextPosition(
	quantity int64,
	costBasis decimal.Decimal,
	side string,
	size int64,
	price decimal.Decimal,
) (int64, decimal.Decimal) {

	sizeDec := decimal.NewFromInt(size)

	switch side {
	case model.OrderSideBuy:
		return quantity + size, costBasis.Add(price.Mul(sizeDec))
	case model.OrderSideSell:
		avg := decimal.Zero
		if quantity > 0 {
			avg = costBasis.Div(decimal.NewFromInt(quantity))
		}
		return quantity - size, costBasis.Sub(avg.Mul(sizeDec))
	}

	return quantity, costBasis
}
