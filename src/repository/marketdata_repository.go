package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/database"
	"brokerapi/src/model"
)

type MarketDataRepository struct {
	db *gorm.DB
}

// NewMarketDataRepository creates a new repository instance using the main database.
func NewMarketDataRepository() *MarketDataRepository {
	logger.WithField("component", "MarketDataRepository").
		Info("Creating new MarketDataRepository with MainDB")

	return &MarketDataRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *MarketDataRepository) WithDB(db *gorm.DB) *MarketDataRepository {
	return &MarketDataRepository{db: db}
}

// FindLastCloseByInstrumentID returns the most recent price point for
// the instrument, or (nil, nil) when the series has no rows for it.
func (r *MarketDataRepository) FindLastCloseByInstrumentID(
	ctx context.Context,
	instrumentID uint,
) (*model.MarketData, error) {

	var row model.MarketData

	err := r.db.WithContext(ctx).
		Where("instrumentid = ?", instrumentID).
		Order("date DESC").
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo":          "MarketDataRepository",
				"op":            "FindLastCloseByInstrumentID",
				"instrument_id": instrumentID,
			}).Info("No price point found for instrument")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":          "MarketDataRepository",
			"op":            "FindLastCloseByInstrumentID",
			"instrument_id": instrumentID,
		}).WithError(err).Error("Failed to fetch last close price")

		return nil, err
	}

	return &row, nil
}

// Append inserts a new price point. The series is append-only; rows are
// never updated or deleted.
func (r *MarketDataRepository) Append(
	ctx context.Context,
	row *model.MarketData,
) error {

	err := r.db.WithContext(ctx).Create(row).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":          "MarketDataRepository",
			"op":            "Append",
			"instrument_id": row.InstrumentID,
			"date":          row.Date,
		}).WithError(err).Error("Failed to append price point")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":          "MarketDataRepository",
		"op":            "Append",
		"instrument_id": row.InstrumentID,
		"close":         row.Close.String(),
		"date":          row.Date,
	}).Info("Price point appended")

	return nil
}
