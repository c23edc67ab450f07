package repository

import (
	"context"
	"errors"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/database"
	"brokerapi/src/model"
)

type InstrumentRepository struct {
	db *gorm.DB
}

// NewInstrumentRepository creates a new repository instance using the main database.
func NewInstrumentRepository() *InstrumentRepository {
	logger.WithField("component", "InstrumentRepository").
		Info("Creating new InstrumentRepository with MainDB")

	return &InstrumentRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *InstrumentRepository) WithDB(db *gorm.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

// FindByID fetches an instrument by its primary ID.
// Returns (nil, nil) if the instrument is not found.
func (r *InstrumentRepository) FindByID(
	ctx context.Context,
	id uint,
) (*model.Instrument, error) {

	var instrument model.Instrument

	err := r.db.WithContext(ctx).First(&instrument, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "InstrumentRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch instrument by ID")

		return nil, err
	}

	return &instrument, nil
}

// SearchByTerm returns instruments whose ticker or name contains the
// term, case-insensitively. LOWER/LIKE keeps the query portable across
// postgres and sqlite.
func (r *InstrumentRepository) SearchByTerm(
	ctx context.Context,
	term string,
) ([]model.Instrument, error) {

	pattern := "%" + strings.ToLower(term) + "%"

	var instruments []model.Instrument

	err := r.db.WithContext(ctx).
		Where("LOWER(ticker) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern).
		Find(&instruments).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "InstrumentRepository",
			"op":   "SearchByTerm",
			"term": term,
		}).WithError(err).Error("Failed to search instruments")

		return nil, err
	}

	return instruments, nil
}

// FindByType returns every instrument of the given type, e.g. all stock
// instruments for the quotes sync.
func (r *InstrumentRepository) FindByType(
	ctx context.Context,
	instrumentType string,
) ([]model.Instrument, error) {

	var instruments []model.Instrument

	err := r.db.WithContext(ctx).
		Where("type = ?", instrumentType).
		Find(&instruments).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "InstrumentRepository",
			"op":   "FindByType",
			"type": instrumentType,
		}).WithError(err).Error("Failed to fetch instruments by type")

		return nil, err
	}

	return instruments, nil
}
