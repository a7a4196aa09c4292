package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/p2pmarket/domain"
)

var (
	txHashRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// IsValidAddress reports whether address is 0x followed by 40 hex characters
func IsValidAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

// IsValidTxHash reports whether hash is 0x followed by 64 hex characters
func IsValidTxHash(hash string) bool {
	return txHashRegexp.MatchString(hash)
}

// IsValidAmount reports whether s is a non-negative decimal number such as "10" or "10.00"
func IsValidAmount(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil && !d.IsNegative()
}

// New returns a validator which reports json field names and knows the
// hexaddr, txhash and amount tags.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "hexaddr", func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	mustRegister(v, "txhash", func(fl validator.FieldLevel) bool {
		return IsValidTxHash(fl.Field().String())
	})
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		return IsValidAmount(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// ToValidationError turns validator errors into a domain.ValidationError with
// one reason per field. Other errors are returned unchanged.
func ToValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	res := domain.NewValidationError()
	for _, fe := range verrs {
		res.Add(fieldName(fe), reason(fe))
	}
	return res
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "max", "len":
		op := map[string]string{"min": "at least", "max": "at most", "len": "exactly"}[fe.Tag()]
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters", op, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain %s %s items", op, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", op, fe.Param())
		}
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email"
	case "hexaddr":
		return "must be 0x followed by 40 hex characters"
	case "txhash":
		return "must be 0x followed by 64 hex characters"
	case "amount":
		return "must be a non-negative decimal number"
	case "hexadecimal":
		return "must be hexadecimal"
	case "numeric":
		return "must be numeric"
	}
	return "failed on " + fe.Tag()
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	return ToValidationError(v.validator.Struct(i))
}
