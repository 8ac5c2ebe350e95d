package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priced struct {
	Price decimal.Decimal `validate:"required,gt=0"`
}

func TestDecimalValidation(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(priced{Price: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(priced{}))
	assert.Error(t, v.Struct(priced{Price: decimal.NewFromInt(-3)}))
}

func TestGenerateDescriptionRequest(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(GenerateDescriptionRequest{Name: "Lamp", Category: "Home & Living"}))
	require.NoError(t, v.Struct(GenerateDescriptionRequest{Name: "Lamp"}))

	err := v.Struct(GenerateDescriptionRequest{Name: "Lamp", Category: "Toys"})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "Category")

	err = v.Struct(GenerateDescriptionRequest{})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "Name")
}

func TestSetOrderStatusRequest(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(SetOrderStatusRequest{Status: "Delivered"}))
	assert.Error(t, v.Struct(SetOrderStatusRequest{Status: "delivered"}))
	assert.Error(t, v.Struct(SetOrderStatusRequest{}))
}

func TestChangeQuantityRequest_ZeroDeltaIsPresent(t *testing.T) {
	v := New()
	zero := 0
	assert.NoError(t, v.Struct(ChangeQuantityRequest{Delta: &zero}))
	assert.Error(t, v.Struct(ChangeQuantityRequest{}))
}

func TestCreateSessionRequest(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(CreateSessionRequest{}))
	assert.NoError(t, v.Struct(CreateSessionRequest{Name: "Ada", Email: "ada@example.com"}))
	assert.Error(t, v.Struct(CreateSessionRequest{Email: "not-an-email"}))
}

func TestSetViewRequest(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(SetViewRequest{View: "admin"}))
	assert.Error(t, v.Struct(SetViewRequest{View: "checkout"}))
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	out := FieldErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), out["error"])
	assert.Empty(t, FieldErrors(nil))
}
