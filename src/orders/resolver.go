package orders

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"brokerapi/src/model"
)

type closePriceFinder interface {
	FindLastCloseByInstrumentID(ctx context.Context, instrumentID uint) (*model.MarketData, error)
}

// Resolver turns a validated order request into a concrete fill. LIMIT
// orders are recorded as NEW at the requested price; market orders fill
// synchronously at the instrument's last close.
type Resolver struct {
	marketData closePriceFinder
	now        func() time.Time
}

func NewResolver(marketData closePriceFinder) *Resolver {
	return &Resolver{marketData: marketData, now: time.Now}
}

// Resolve builds the order record for the request: side, size, price
// and status. For cash movements and amount-based orders the Price
// field holds the total money moved; otherwise it is the unit price.
func (r *Resolver) Resolve(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	order := &model.Order{
		InstrumentID: req.InstrumentID,
		UserID:       req.UserID,
		Side:         req.Side,
		Type:         req.Type,
		Datetime:     r.now(),
	}

	if req.Type == model.OrderTypeLimit {
		order.Size = *req.Size
		order.Price = *req.LimitPrice
		order.Status = model.OrderStatusNew
		return order, nil
	}

	if order.IsCashMovement() {
		order.Size = 0
		order.Price = *req.Amount
		order.Status = model.OrderStatusFilled
		return order, nil
	}

	if (req.Size != nil) == (req.Amount != nil) {
		return nil, &MalformedRequestError{Issues: []FieldIssue{
			{Path: "(size|amount)", Message: msgSizeOrAmount},
		}}
	}

	lastClose, err := r.marketData.FindLastCloseByInstrumentID(ctx, req.InstrumentID)
	if err != nil {
		return nil, err
	}
	if lastClose == nil {
		return nil, ErrPriceUnavailable
	}

	order.Price = lastClose.Close
	order.Status = model.OrderStatusFilled

	if req.Amount != nil {
		// Fractional shares are truncated; the cash remainder is not
		// credited back.
		order.Size = req.Amount.Div(lastClose.Close).Floor().IntPart()
	} else {
		order.Size = *req.Size
	}

	logger.WithFields(map[string]interface{}{
		"component":     "Resolver",
		"instrument_id": req.InstrumentID,
		"side":          req.Side,
		"size":          order.Size,
		"price":         order.Price.String(),
	}).Debug("Market order resolved at last close")

	return order, nil
}
