package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// MaxMoney bounds every amount stored as NUMERIC(12,2).
var MaxMoney = decimal.New(1, 10)

// MaxInt32 bounds counts stored as INTEGER.
const MaxInt32 = 2147483647

// MoneyInRange reports whether d fits a NUMERIC(12,2) column.
func MoneyInRange(d decimal.Decimal) bool {
	return d.Abs().LessThan(MaxMoney)
}

func init() {
	validate.SetTagName("binding")

	// Field errors use the JSON name the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Money fields are validated as numbers so gt/gte tags apply.
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if d, ok := v.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	if err := validate.RegisterValidation("money", validateMoney); err != nil {
		panic(err)
	}

	binding.Validator = ginValidator{}
}

// validateMoney accepts at most two fractional digits inside MaxMoney.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	if !ok {
		return false
	}
	return MoneyInRange(d) && d.Equal(d.Truncate(2))
}

// fieldDecimal reads the decimal behind fl from its parent struct, since the
// custom type func hands validators a float64.
func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() == reflect.Struct {
		if f := parent.FieldByName(fl.StructFieldName()); f.IsValid() && f.CanInterface() {
			switch v := f.Interface().(type) {
			case decimal.Decimal:
				return v, true
			case *decimal.Decimal:
				if v != nil {
					return *v, true
				}
			}
		}
	}
	if fl.Field().Kind() == reflect.Float64 {
		return decimal.NewFromFloat(fl.Field().Float()), true
	}
	return decimal.Decimal{}, false
}

// ginValidator lets ShouldBindJSON share this validator instance.
type ginValidator struct{}

func (ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	switch value.Kind() {
	case reflect.Struct:
		return validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := (ginValidator{}).ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ginValidator) Engine() any {
	return validate
}

// ValidateStruct validates data and returns field errors, or nil when valid.
func ValidateStruct(data interface{}) []utils.FieldError {
	return FieldErrors(validate.Struct(data))
}

// FieldErrors converts a binding or validation error into client facing field errors.
func FieldErrors(err error) []utils.FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]utils.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, utils.FieldError{Field: fieldPath(fe), Message: message(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []utils.FieldError{{Field: field, Message: "must be of type " + typeErr.Type.String()}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []utils.FieldError{{Field: "body", Message: "must be a valid JSON object"}}
	}

	return []utils.FieldError{{Field: "body", Message: "is invalid"}}
}

// fieldPath drops the struct name from the namespace: items[0].quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at most %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "money":
		return "must be an amount with at most 2 decimal places below 10000000000"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date in the format " + fe.Param()
	case "e164":
		return "must be a phone number in international format"
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}
