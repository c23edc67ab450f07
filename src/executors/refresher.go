package executors

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/connectors"
	"brokerapi/src/model"
	"brokerapi/src/repository"
	"brokerapi/src/utils"
)

// Refresher keeps the daily close series current by pulling end-of-day
// quotes for every stock instrument. A row already present for the
// quote's trading day is not appended again, so repeated runs are
// idempotent.
type Refresher struct {
	Log    *logrus.Entry
	DB     *gorm.DB
	Client *connectors.QuotesClient
}

// RunOnce performs a single refresh over all stock instruments.
// Instruments whose quote cannot be fetched are skipped and logged; the
// refresh continues with the rest.
func (r *Refresher) RunOnce(ctx context.Context) error {
	instrumentRepo := repository.NewInstrumentRepository().WithDB(r.DB)
	marketDataRepo := repository.NewMarketDataRepository().WithDB(r.DB)

	stocks, err := instrumentRepo.FindByType(ctx, model.InstrumentTypeStock)
	if err != nil {
		return err
	}

	var synced, skipped, failed int
	for i := range stocks {
		instrument := &stocks[i]

		quote, err := r.Client.FetchDailyQuote(ctx, instrument.Ticker)
		if err != nil {
			r.Log.WithError(err).WithField("ticker", instrument.Ticker).
				Warn("Skipping instrument, quote fetch failed")
			failed++
			continue
		}

		date, err := quote.ParsedDate()
		if err != nil {
			date = time.Now()
		}

		last, err := marketDataRepo.FindLastCloseByInstrumentID(ctx, instrument.ID)
		if err != nil {
			failed++
			continue
		}
		if last != nil && utils.SameTradingDay(last.Date, date) {
			r.Log.WithFields(map[string]interface{}{
				"ticker": instrument.Ticker,
				"date":   utils.StartOfDay(date).Format("2006-01-02"),
			}).Debug("Close already recorded for trading day, skipping")
			skipped++
			continue
		}

		row := &model.MarketData{
			InstrumentID:  instrument.ID,
			Open:          quote.Open,
			High:          quote.High,
			Low:           quote.Low,
			Close:         quote.Close,
			PreviousClose: quote.PreviousClose,
			Date:          date,
		}
		if err := marketDataRepo.Append(ctx, row); err != nil {
			failed++
			continue
		}
		synced++
	}

	r.Log.WithFields(map[string]interface{}{
		"synced":  synced,
		"skipped": skipped,
		"failed":  failed,
	}).Info("Quotes refresh finished")

	return nil
}

// StartLoop runs RunOnce on the configured period until the context is
// cancelled. A failed cycle is logged and the loop keeps running.
func (r *Refresher) StartLoop(ctx context.Context) error {
	config := GetConfig()

	ticker := time.NewTicker(config.LoopPeriod)
	defer ticker.Stop()

	if err := r.RunOnce(ctx); err != nil {
		r.Log.WithError(err).Error("Initial quotes refresh failed")
	}

	for {
		select {
		case <-ctx.Done():
			r.Log.Info("Quotes refresh loop stopped")
			return nil

		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.Log.WithError(err).Error("Quotes refresh failed")
			}
		}
	}
}
