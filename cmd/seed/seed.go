package seed

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/model"
)

// Seeder loads a small demo data set: a few users, a handful of
// instruments (including the ARS cash instrument) and one price point
// per stock. Inserts are idempotent so the command can be re-run.
type Seeder struct {
	Log *logrus.Entry
	DB  *gorm.DB
}

func (s *Seeder) Start() error {
	users := []model.User{
		{ID: 1, Email: "emiliano@test.com", AccountNumber: "10001"},
		{ID: 2, Email: "jose@test.com", AccountNumber: "10002"},
	}

	instruments := []model.Instrument{
		{ID: 1, Ticker: "DYCA", Name: "Dycasa S.A.", Type: model.InstrumentTypeStock},
		{ID: 2, Ticker: "CAPX", Name: "Capex S.A.", Type: model.InstrumentTypeStock},
		{ID: 3, Ticker: "PAMP", Name: "Pampa Holding S.A.", Type: model.InstrumentTypeStock},
		{ID: 66, Ticker: "ARS", Name: "PESOS", Type: model.InstrumentTypeCurrency},
	}

	closes := map[uint]string{
		1: "257.00",
		2: "52.60",
		3: "925.85",
	}

	for i := range users {
		if err := s.DB.FirstOrCreate(&users[i], model.User{ID: users[i].ID}).Error; err != nil {
			return err
		}
	}

	for i := range instruments {
		if err := s.DB.FirstOrCreate(&instruments[i], model.Instrument{ID: instruments[i].ID}).Error; err != nil {
			return err
		}
	}

	date := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	for instrumentID, close := range closes {
		price := decimal.RequireFromString(close)

		var count int64
		if err := s.DB.Model(&model.MarketData{}).
			Where("instrumentid = ?", instrumentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := model.MarketData{
			InstrumentID:  instrumentID,
			Open:          price,
			High:          price,
			Low:           price,
			Close:         price,
			PreviousClose: price,
			Date:          date,
		}
		if err := s.DB.Create(&row).Error; err != nil {
			return err
		}
	}

	s.Log.WithFields(map[string]interface{}{
		"users":       len(users),
		"instruments": len(instruments),
	}).Info("Demo data seeded")

	return nil
}
