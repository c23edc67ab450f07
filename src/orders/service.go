package orders

import (
	"context"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"brokerapi/src/model"
)

type orderCommitter interface {
	Create(ctx context.Context, order *model.Order) error
}

// Service is the order entrypoint: it resolves the request into a fill,
// validates holdings and commits the order together with its position
// update.
type Service struct {
	resolver  *Resolver
	validator *Validator
	orders    orderCommitter
	locks     *userLocks
}

func NewService(resolver *Resolver, validator *Validator, orders orderCommitter) *Service {
	return &Service{
		resolver:  resolver,
		validator: validator,
		orders:    orders,
		locks:     newUserLocks(),
	}
}

// CreateOrder resolves, validates and commits one order request.
// The user's lock is held from validation through commit so that two
// in-flight orders cannot both pass the balance check against the same
// funds.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	order, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	order.Reference = uuid.NewString()

	if err := s.validator.Validate(ctx, order); err != nil {
		logger.WithFields(map[string]interface{}{
			"component":     "OrderService",
			"user_id":       req.UserID,
			"instrument_id": req.InstrumentID,
			"side":          req.Side,
		}).WithError(err).Info("Order rejected by holdings validation")

		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	logger.WithFields(map[string]interface{}{
		"component": "OrderService",
		"order_id":  order.ID,
		"reference": order.Reference,
		"user_id":   order.UserID,
		"side":      order.Side,
		"status":    order.Status,
	}).Info("Order committed")

	return order, nil
}
