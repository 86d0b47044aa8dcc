package utils

import (
	"reflect"
	"slices"
	"strings"

	"github.com/IlyaBatulin/lesopilka/catalog"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the custom binding rules on gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// Field names in errors follow the JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Money amounts are validated as numbers (min=0 etc.)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"sortmode":    validateSortMode,
		"viewmode":    validateViewMode,
		"orderstatus": validateOrderStatus,
		"phone":       validatePhone,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateSortMode(fl validator.FieldLevel) bool {
	return slices.Contains(catalog.SortModes, catalog.SortMode(fl.Field().String()))
}

func validateViewMode(fl validator.FieldLevel) bool {
	mode := fl.Field().String()
	return mode == models.ViewModeGrid || mode == models.ViewModeList
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return slices.Contains(models.OrderStatuses, fl.Field().String())
}

// validatePhone accepts 10 to 15 digits with the usual separators:
// "+7 (900) 123-45-67", "89001234567".
func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func IsPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 15
}
