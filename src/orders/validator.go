package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"brokerapi/src/model"
)

type userFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type instrumentFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Instrument, error)
}

type quantityFinder interface {
	FindQuantity(ctx context.Context, userID, instrumentID uint) (int64, error)
}

type cashBalanceFinder interface {
	CashBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
}

// Validator checks a resolved order against current holdings before it
// is committed.
type Validator struct {
	users       userFinder
	instruments instrumentFinder
	positions   quantityFinder
	cash        cashBalanceFinder
}

func NewValidator(
	users userFinder,
	instruments instrumentFinder,
	positions quantityFinder,
	cash cashBalanceFinder,
) *Validator {
	return &Validator{
		users:       users,
		instruments: instruments,
		positions:   positions,
		cash:        cash,
	}
}

// Validate verifies the user and instrument exist and that the user has
// enough cash (BUY, CASH_OUT) or shares (SELL) for the resolved fill.
// CASH_IN needs no balance check.
func (v *Validator) Validate(ctx context.Context, order *model.Order) error {
	user, err := v.users.FindByID(ctx, order.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return &NotFoundError{Resource: "user", ID: order.UserID}
	}

	instrument, err := v.instruments.FindByID(ctx, order.InstrumentID)
	if err != nil {
		return err
	}
	if instrument == nil {
		return &NotFoundError{Resource: "instrument", ID: order.InstrumentID}
	}

	switch order.Side {
	case model.OrderSideBuy:
		// A missing size counts as one share. Orders resolved through
		// the market path always carry a size; this default only
		// matters for limit orders recorded without one.
		size := order.Size
		if size == 0 {
			size = 1
		}
		required := order.Price.Mul(decimal.NewFromInt(size))

		available, err := v.cash.CashBalance(ctx, order.UserID)
		if err != nil {
			return err
		}
		if available.LessThan(required) {
			return &InsufficientFundsError{Required: required, Available: available}
		}

	case model.OrderSideSell:
		held, err := v.positions.FindQuantity(ctx, order.UserID, order.InstrumentID)
		if err != nil {
			return err
		}
		if held < order.Size {
			return &InsufficientHoldingsError{
				InstrumentID: order.InstrumentID,
				Required:     order.Size,
				Available:    held,
			}
		}

	case model.OrderSideCashOut:
		available, err := v.cash.CashBalance(ctx, order.UserID)
		if err != nil {
			return err
		}
		if available.LessThan(order.Price) {
			return &InsufficientFundsError{Required: order.Price, Available: available}
		}
	}

	return nil
}
