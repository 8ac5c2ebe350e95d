package validation

import (
	"reflect"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/shopspring/decimal"
)

// New returns a validator that understands decimal amounts and the
// storefront's category and order-status enums.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// decimals validate as float64 so numeric tags (gt, gte, lte) apply
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("category", func(fl validatorv10.FieldLevel) bool {
		return catalog.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("order_status", func(fl validatorv10.FieldLevel) bool {
		_, err := orders.ParseStatus(fl.Field().String())
		return err == nil
	})

	return v
}

func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// FieldErrors flattens validator errors into field -> message.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = fe.Error()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
