package portfolio

import (
	"context"

	"github.com/shopspring/decimal"

	"brokerapi/src/model"
)

type filledOrderFinder interface {
	FindFilledByUserID(ctx context.Context, userID uint) ([]model.Order, error)
}

// CashService derives a user's cash balance by replaying their filled
// order history. There is no incremental cache: correctness depends
// only on each order having been committed atomically, not on replay
// order.
type CashService struct {
	orders filledOrderFinder
}

func NewCashService(orders filledOrderFinder) *CashService {
	return &CashService{orders: orders}
}

// CashBalance folds every FILLED order belonging to the user.
func (s *CashService) CashBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	filled, err := s.orders.FindFilledByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return FoldCash(filled), nil
}

// FoldCash sums the cash effect of the given orders. CASH_IN adds the
// amount, CASH_OUT subtracts it, BUY subtracts size x price, SELL adds
// size x price. The fold is commutative, so order does not matter.
func FoldCash(filled []model.Order) decimal.Decimal {
	total := decimal.Zero

	for i := range filled {
		order := &filled[i]
		notional := order.Price.Mul(decimal.NewFromInt(order.Size))

		switch order.Side {
		case model.OrderSideCashIn:
			total = total.Add(order.Price)
		case model.OrderSideCashOut:
			total = total.Sub(order.Price)
		case model.OrderSideBuy:
			total = total.Sub(notional)
		case model.OrderSideSell:
			total = total.Add(notional)
		}
	}

	return total
}
