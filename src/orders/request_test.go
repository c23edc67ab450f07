package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerapi/src/model"
)

func ptrInt64(v int64) *int64 { return &v }

func ptrDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRequestValidateMarketBySize(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideBuy,
		Size:         ptrInt64(10),
	}

	assert.Nil(t, req.Validate())
}

func TestRequestValidateMarketByAmount(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideSell,
		Amount:       ptrDecimal("1000"),
	}

	assert.Nil(t, req.Validate())
}

func TestRequestValidateRejectsBothSizeAndAmount(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideBuy,
		Size:         ptrInt64(10),
		Amount:       ptrDecimal("1000"),
	}

	err := req.Validate()
	require.NotNil(t, err)
	require.Len(t, err.Issues, 1)
	assert.Equal(t, "(size|amount)", err.Issues[0].Path)
	assert.Equal(t, msgSizeOrAmount, err.Issues[0].Message)
}

func TestRequestValidateRejectsNeitherSizeNorAmount(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideSell,
	}

	err := req.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "(size|amount)", err.Issues[0].Path)
}

func TestRequestValidateCashSidesRequireAmount(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 66,
		UserID:       1,
		Side:         model.OrderSideCashIn,
		Size:         ptrInt64(10),
	}

	err := req.Validate()
	require.NotNil(t, err)
	assert.Equal(t, "amount", err.Issues[0].Path)
	assert.Equal(t, msgAmountInvalid, err.Issues[0].Message)
}

func TestRequestValidateLimit(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeLimit,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideBuy,
		Size:         ptrInt64(5),
		LimitPrice:   ptrDecimal("95.50"),
	}

	assert.Nil(t, req.Validate())
}

func TestRequestValidateLimitRejectsCashSides(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeLimit,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideCashIn,
		Size:         ptrInt64(5),
		LimitPrice:   ptrDecimal("95.50"),
	}

	err := req.Validate()
	require.NotNil(t, err)
	assert.Equal(t, msgLimitSideInvalid, err.Issues[0].Message)
}

func TestRequestValidateCollectsCommonIssues(t *testing.T) {
	req := &CreateOrderRequest{Type: "STOP", Side: "HOLD"}

	err := req.Validate()
	require.NotNil(t, err)
	assert.Len(t, err.Issues, 4)
}

func TestRequestValidateRejectsNonPositiveValues(t *testing.T) {
	req := &CreateOrderRequest{
		Type:         model.OrderTypeMarket,
		InstrumentID: 1,
		UserID:       1,
		Side:         model.OrderSideBuy,
		Amount:       ptrDecimal("-5"),
	}

	err := req.Validate()
	require.NotNil(t, err)
	assert.Equal(t, msgAmountInvalid, err.Issues[0].Message)
}
