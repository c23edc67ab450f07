package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"brokerapi/src/model"
	"brokerapi/src/orders"
)

type orderCreator interface {
	CreateOrder(ctx context.Context, req *orders.CreateOrderRequest) (*model.Order, error)
}

type errorResponse struct {
	Error  string              `json:"error"`
	Issues []orders.FieldIssue `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("Failed to write JSON response")
	}
}

// CreateOrderHandler returns the POST /orders handler. Business
// rejections map to 4xx responses with the rejection detail; commit
// failures surface as a generic 500.
func CreateOrderHandler(svc orderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orders.CreateOrderRequest

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			logger.WithError(err).Warn("invalid order payload")
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request"})
			return
		}

		order, err := svc.CreateOrder(r.Context(), &req)
		if err != nil {
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	var malformed *orders.MalformedRequestError
	if errors.As(err, &malformed) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Invalid request",
			Issues: malformed.Issues,
		})
		return
	}

	var notFound *orders.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
		return
	}

	if errors.Is(err, orders.ErrPriceUnavailable) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	var insufficientFunds *orders.InsufficientFundsError
	var insufficientHoldings *orders.InsufficientHoldingsError
	if errors.As(err, &insufficientFunds) || errors.As(err, &insufficientHoldings) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	logger.WithError(err).Error("Order creation failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
