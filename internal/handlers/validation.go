package handlers

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	registerErr  error

	yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// RegisterValidators teaches gin's validator about decimals and the domain enums.
// Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		// numeric tags (min, max, gt) then apply to decimal fields
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		validations := map[string]validator.Func{
			"subscription_type": func(fl validator.FieldLevel) bool {
				return domain.SubscriptionType(fl.Field().String()).Valid()
			},
			"customer_status": func(fl validator.FieldLevel) bool {
				return domain.CustomerStatus(fl.Field().String()).Valid()
			},
			"transaction_type": func(fl validator.FieldLevel) bool {
				return domain.TransactionType(fl.Field().String()).Valid()
			},
			"payment_method": func(fl validator.FieldLevel) bool {
				return domain.PaymentMethod(fl.Field().String()).Valid()
			},
			"yearmonth": func(fl validator.FieldLevel) bool {
				return yearMonthPattern.MatchString(fl.Field().String())
			},
		}
		for tag, fn := range validations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("failed to register %s validation: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
