package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerapi/src/model"
	"brokerapi/src/orders"
)

type stubOrderCreator struct {
	order *model.Order
	err   error
	got   *orders.CreateOrderRequest
}

func (s *stubOrderCreator) CreateOrder(ctx context.Context, req *orders.CreateOrderRequest) (*model.Order, error) {
	s.got = req
	return s.order, s.err
}

func postOrder(t *testing.T, svc orderCreator, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateOrderHandler(svc)(rec, req)
	return rec
}

func TestCreateOrderHandlerCreated(t *testing.T) {
	svc := &stubOrderCreator{order: &model.Order{
		ID:           7,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideBuy,
		Type:         model.OrderTypeMarket,
		Size:         40,
		Price:        decimal.NewFromInt(100),
		Status:       model.OrderStatusFilled,
	}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":40}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, model.OrderStatusFilled, got.Status)

	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.Size)
	assert.Equal(t, int64(40), *svc.got.Size)
}

func TestCreateOrderHandlerRejectsMalformedJSON(t *testing.T) {
	rec := postOrder(t, &stubOrderCreator{}, `{"type":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandlerRejectsUnknownFields(t *testing.T) {
	rec := postOrder(t, &stubOrderCreator{}, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":1,"leverage":10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderHandlerValidationIssues(t *testing.T) {
	svc := &stubOrderCreator{err: &orders.MalformedRequestError{Issues: []orders.FieldIssue{
		{Path: "(size|amount)", Message: "Provide either size or amount (not both)"},
	}}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":1,"amount":"100"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Issues, 1)
	assert.Equal(t, "(size|amount)", body.Issues[0].Path)
}

func TestCreateOrderHandlerNotFound(t *testing.T) {
	svc := &stubOrderCreator{err: &orders.NotFoundError{Resource: "user", ID: 42}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":42,"side":"BUY","size":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderHandlerPriceUnavailable(t *testing.T) {
	svc := &stubOrderCreator{err: orders.ErrPriceUnavailable}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":1}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderHandlerInsufficientFunds(t *testing.T) {
	svc := &stubOrderCreator{err: &orders.InsufficientFundsError{
		Required:  decimal.NewFromInt(4000),
		Available: decimal.NewFromInt(3999),
	}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":40}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrderHandlerInsufficientHoldings(t *testing.T) {
	svc := &stubOrderCreator{err: &orders.InsufficientHoldingsError{
		InstrumentID: 1,
		Required:     21,
		Available:    20,
	}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"SELL","size":21}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrderHandlerPersistenceFailure(t *testing.T) {
	svc := &stubOrderCreator{err: &orders.PersistenceError{Err: assert.AnError}}

	rec := postOrder(t, svc, `{"type":"MARKET","instrumentId":1,"userId":1,"side":"BUY","size":1}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
}
