package dto

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// futureSlack allows expenses dated "tomorrow" to absorb client/server timezone skew.
const futureSlack = 24 * time.Hour

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RegisterValidators installs the custom rules used by request DTOs on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("notfuture", notFuture); err != nil {
		return fmt.Errorf("register notfuture: %w", err)
	}
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return nil
}

// ValidateStruct checks s against its binding tags. Failures wrap apperrors.ErrValidation.
func ValidateStruct(s any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		// registration only fails on programmer error
		_ = RegisterValidators(validate)
	})
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now().Add(futureSlack))
}

// decimalValue lets numeric tags such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
