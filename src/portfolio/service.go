package portfolio

import (
	"context"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"brokerapi/src/model"
)

// DefaultCurrency labels every monetary amount in portfolio snapshots.
const DefaultCurrency = "ARS"

type Amount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type InstrumentPosition struct {
	ID             uint            `json:"id"`
	Ticker         string          `json:"ticker"`
	Name           string          `json:"name"`
	Quantity       int64           `json:"quantity"`
	TotalPosition  Amount          `json:"totalPosition"`
	TotalReturnPct decimal.Decimal `json:"totalReturnPct"`
}

type Portfolio struct {
	UserID      uint                 `json:"userId"`
	Instruments []InstrumentPosition `json:"instruments"`
	Cash        Amount               `json:"cash"`
}

type userFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type positionLister interface {
	FindByUserID(ctx context.Context, userID uint) ([]model.Position, error)
}

type instrumentFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Instrument, error)
}

type closePriceFinder interface {
	FindLastCloseByInstrumentID(ctx context.Context, instrumentID uint) (*model.MarketData, error)
}

// Service assembles portfolio snapshots from the position ledger,
// current market prices and the replayed cash balance.
type Service struct {
	users       userFinder
	positions   positionLister
	instruments instrumentFinder
	marketData  closePriceFinder
	cash        *CashService
}

func NewService(
	users userFinder,
	positions positionLister,
	instruments instrumentFinder,
	marketData closePriceFinder,
	cash *CashService,
) *Service {
	return &Service{
		users:       users,
		positions:   positions,
		instruments: instruments,
		marketData:  marketData,
		cash:        cash,
	}
}

// Snapshot returns the user's portfolio: every position row (zero
// quantity included) valued at the instrument's last close, plus the
// cash balance. Returns a NotFoundError-compatible nil portfolio when
// the user does not exist.
func (s *Service) Snapshot(ctx context.Context, userID uint) (*Portfolio, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	rows, err := s.positions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	instruments := make([]InstrumentPosition, 0, len(rows))
	for i := range rows {
		entry, err := s.hydratePosition(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, *entry)
	}

	cashBalance, err := s.cash.CashBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"component": "PortfolioService",
		"user_id":   userID,
		"positions": len(instruments),
		"cash":      cashBalance.String(),
	}).Debug("Portfolio snapshot assembled")

	return &Portfolio{
		UserID:      userID,
		Instruments: instruments,
		Cash:        Amount{Amount: cashBalance, Currency: DefaultCurrency},
	}, nil
}

func (s *Service) hydratePosition(ctx context.Context, position *model.Position) (*InstrumentPosition, error) {
	instrument, err := s.instruments.FindByID(ctx, position.InstrumentID)
	if err != nil {
		return nil, err
	}

	lastClose, err := s.marketData.FindLastCloseByInstrumentID(ctx, position.InstrumentID)
	if err != nil {
		return nil, err
	}

	// A position with no price point is valued at zero rather than
	// failing the whole snapshot.
	lastPrice := decimal.Zero
	if lastClose != nil {
		lastPrice = lastClose.Close
	}

	marketValue := lastPrice.Mul(decimal.NewFromInt(position.Quantity))

	returnPct := decimal.Zero
	if position.CostBasis.IsPositive() {
		returnPct = marketValue.Sub(position.CostBasis).
			Div(position.CostBasis).
			Mul(decimal.NewFromInt(100))
	}

	entry := &InstrumentPosition{
		ID:             position.InstrumentID,
		Quantity:       position.Quantity,
		TotalPosition:  Amount{Amount: marketValue, Currency: DefaultCurrency},
		TotalReturnPct: returnPct,
	}
	if instrument != nil {
		entry.Ticker = instrument.Ticker
		entry.Name = instrument.Name
	}

	return entry, nil
}
